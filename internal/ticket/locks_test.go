package ticket

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannelLocksSerializePerChannel(t *testing.T) {
	locks := NewChannelLocks()

	var mu sync.Mutex
	counters := map[string]int{}
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		for _, channel := range []string{"a", "b"} {
			wg.Add(1)
			go func(channel string) {
				defer wg.Done()
				unlock := locks.Acquire(channel)
				defer unlock()
				mu.Lock()
				counters[channel]++
				mu.Unlock()
			}(channel)
		}
	}
	wg.Wait()

	assert.Equal(t, 50, counters["a"])
	assert.Equal(t, 50, counters["b"])
}
