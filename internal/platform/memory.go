package platform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// MemoryClient is an in-process Client implementation. It backs tests and
// dry-run operation when no real guild binding is configured.
type MemoryClient struct {
	mu sync.Mutex

	botID    string
	seq      int
	channels map[string]*Channel
	acls     map[string][]domain.AccessRule
	messages map[string][]Message
	members  map[string]*Member
	roles    map[string]map[string]bool
	dms      map[string][]Outgoing
	noDM     map[string]bool
}

// NewMemoryClient creates an empty in-memory guild.
func NewMemoryClient(botID string) *MemoryClient {
	return &MemoryClient{
		botID:    botID,
		channels: make(map[string]*Channel),
		acls:     make(map[string][]domain.AccessRule),
		messages: make(map[string][]Message),
		members:  make(map[string]*Member),
		roles:    make(map[string]map[string]bool),
		dms:      make(map[string][]Outgoing),
		noDM:     make(map[string]bool),
	}
}

// AddMember registers a member with the given roles.
func (m *MemoryClient) AddMember(id, tag, displayName string, roleIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[id] = &Member{ID: id, Tag: tag, DisplayName: displayName}
	set := make(map[string]bool, len(roleIDs))
	for _, r := range roleIDs {
		set[r] = true
	}
	m.roles[id] = set
}

// BlockDirectMessages makes DirectMessage fail for the given user.
func (m *MemoryClient) BlockDirectMessages(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.noDM[userID] = true
}

// DirectMessages returns everything delivered to a user's DMs.
func (m *MemoryClient) DirectMessages(userID string) []Outgoing {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Outgoing, len(m.dms[userID]))
	copy(out, m.dms[userID])
	return out
}

// ACL returns the current access rules of a channel.
func (m *MemoryClient) ACL(channelID string) []domain.AccessRule {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AccessRule, len(m.acls[channelID]))
	copy(out, m.acls[channelID])
	return out
}

// SeedMessage appends a message to a channel's history directly.
func (m *MemoryClient) SeedMessage(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID == "" {
		m.seq++
		msg.ID = fmt.Sprintf("msg-%d", m.seq)
	}
	m.messages[msg.ChannelID] = append(m.messages[msg.ChannelID], msg)
}

func (m *MemoryClient) BotID() string {
	return m.botID
}

func (m *MemoryClient) CreateChannel(ctx context.Context, name, parentID, topic string, acl []domain.AccessRule) (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	ch := &Channel{
		ID:       fmt.Sprintf("chan-%d", m.seq),
		Name:     name,
		Topic:    topic,
		ParentID: parentID,
	}
	m.channels[ch.ID] = ch
	m.acls[ch.ID] = append([]domain.AccessRule{}, acl...)
	return &Channel{ID: ch.ID, Name: ch.Name, Topic: ch.Topic, ParentID: ch.ParentID}, nil
}

func (m *MemoryClient) Channel(ctx context.Context, channelID string) (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[channelID]
	if !ok {
		return nil, ErrChannelNotFound
	}
	return &Channel{ID: ch.ID, Name: ch.Name, Topic: ch.Topic, ParentID: ch.ParentID}, nil
}

func (m *MemoryClient) DeleteChannel(ctx context.Context, channelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channelID]; !ok {
		return ErrChannelNotFound
	}
	delete(m.channels, channelID)
	delete(m.acls, channelID)
	delete(m.messages, channelID)
	return nil
}

func (m *MemoryClient) SetChannelName(ctx context.Context, channelID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[channelID]
	if !ok {
		return ErrChannelNotFound
	}
	ch.Name = name
	return nil
}

func (m *MemoryClient) SetChannelTopic(ctx context.Context, channelID, topic string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[channelID]
	if !ok {
		return ErrChannelNotFound
	}
	ch.Topic = topic
	return nil
}

func (m *MemoryClient) SetChannelParent(ctx context.Context, channelID, parentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[channelID]
	if !ok {
		return ErrChannelNotFound
	}
	ch.ParentID = parentID
	return nil
}

func (m *MemoryClient) ApplyAccessRules(ctx context.Context, channelID string, rules []domain.AccessRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channelID]; !ok {
		return ErrChannelNotFound
	}
	m.acls[channelID] = append([]domain.AccessRule{}, rules...)
	return nil
}

func (m *MemoryClient) GrantAccess(ctx context.Context, channelID string, rule domain.AccessRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channelID]; !ok {
		return ErrChannelNotFound
	}
	for i, existing := range m.acls[channelID] {
		if existing.SubjectID == rule.SubjectID {
			m.acls[channelID][i] = rule
			return nil
		}
	}
	m.acls[channelID] = append(m.acls[channelID], rule)
	return nil
}

func (m *MemoryClient) RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channelID]; !ok {
		return nil, ErrChannelNotFound
	}
	history := m.messages[channelID]
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	out := make([]Message, len(history))
	copy(out, history)
	return out, nil
}

func (m *MemoryClient) Send(ctx context.Context, channelID string, msg Outgoing) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channelID]; !ok {
		return nil, ErrChannelNotFound
	}
	m.seq++
	stored := Message{
		ID:        fmt.Sprintf("msg-%d", m.seq),
		ChannelID: channelID,
		AuthorTag: m.botID,
		AuthorID:  m.botID,
		Automated: true,
		Pinned:    msg.Pin,
		Timestamp: time.Now(),
		Body:      msg.Content,
		Embeds:    append([]Embed{}, msg.Embeds...),
	}
	m.messages[channelID] = append(m.messages[channelID], stored)
	return &stored, nil
}

func (m *MemoryClient) BulkDelete(ctx context.Context, channelID string, messageIDs []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.channels[channelID]; !ok {
		return 0, ErrChannelNotFound
	}
	doomed := make(map[string]bool, len(messageIDs))
	for _, id := range messageIDs {
		doomed[id] = true
	}
	kept := m.messages[channelID][:0]
	deleted := 0
	for _, msg := range m.messages[channelID] {
		if doomed[msg.ID] {
			deleted++
			continue
		}
		kept = append(kept, msg)
	}
	m.messages[channelID] = kept
	return deleted, nil
}

func (m *MemoryClient) DirectMessage(ctx context.Context, userID string, msg Outgoing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.noDM[userID] {
		return ErrDeliveryFailed
	}
	if _, ok := m.members[userID]; !ok {
		return ErrMemberNotFound
	}
	m.dms[userID] = append(m.dms[userID], msg)
	return nil
}

func (m *MemoryClient) Member(ctx context.Context, userID string) (*Member, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	member, ok := m.members[userID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return &Member{ID: member.ID, Tag: member.Tag, DisplayName: member.DisplayName}, nil
}

func (m *MemoryClient) HasRole(ctx context.Context, userID, roleID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.members[userID]; !ok {
		return false, ErrMemberNotFound
	}
	return m.roles[userID][roleID], nil
}
