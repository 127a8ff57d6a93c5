package ticket

import "sync"

// ChannelLocks serializes lifecycle operations per ticket channel. Two
// concurrent claims on the same channel take the same lock, so only one
// can pass the no-claimant check.
type ChannelLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewChannelLocks creates an empty lock registry.
func NewChannelLocks() *ChannelLocks {
	return &ChannelLocks{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the channel and returns the release function. Locks are
// never removed from the registry; the set of live channels is small.
func (c *ChannelLocks) Acquire(channelID string) func() {
	c.mu.Lock()
	lock, ok := c.locks[channelID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[channelID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
