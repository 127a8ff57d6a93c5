package platform

import (
	"context"
	"errors"
	"time"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// Errors surfaced by platform implementations.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrDeliveryFailed  = errors.New("direct message delivery failed")
)

// Channel is a guild text channel as the bot sees it.
type Channel struct {
	ID       string
	Name     string
	Topic    string
	ParentID string
}

// EmbedField is one name/value pair inside an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich message block.
type Embed struct {
	Title       string
	Description string
	Fields      []EmbedField
	Footer      string
	Color       string
	Timestamp   time.Time
}

// Button is an interactive button attached to a message.
type Button struct {
	ID    string
	Label string
	Style string
}

// SelectOption is one entry in a select menu.
type SelectOption struct {
	Label string
	Value string
	Emoji string
}

// Select is a select menu attached to a message.
type Select struct {
	ID          string
	Placeholder string
	Options     []SelectOption
}

// Outgoing is a message the bot sends.
type Outgoing struct {
	Content string
	Embeds  []Embed
	Buttons []Button
	Select  *Select
	Files   []string
	Pin     bool
}

// Message is a message in a channel's history.
type Message struct {
	ID        string
	ChannelID string
	AuthorTag string
	AuthorID  string
	Automated bool
	Pinned    bool
	Timestamp time.Time
	Body      string
	Embeds    []Embed
}

// Member is a resolved guild member.
type Member struct {
	ID          string
	Tag         string
	DisplayName string
}

// Client is the guild surface the bot consumes. Channel, member, role,
// message and permission operations all go through it; the concrete
// binding is provided at process start.
type Client interface {
	BotID() string

	CreateChannel(ctx context.Context, name, parentID, topic string, acl []domain.AccessRule) (*Channel, error)
	Channel(ctx context.Context, channelID string) (*Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error
	SetChannelName(ctx context.Context, channelID, name string) error
	SetChannelTopic(ctx context.Context, channelID, topic string) error
	SetChannelParent(ctx context.Context, channelID, parentID string) error

	// ApplyAccessRules replaces the channel's full ACL with the given rules.
	ApplyAccessRules(ctx context.Context, channelID string, rules []domain.AccessRule) error
	// GrantAccess upserts a single subject's rule without touching the rest.
	GrantAccess(ctx context.Context, channelID string, rule domain.AccessRule) error

	// RecentMessages returns up to limit most recent messages, oldest first.
	RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error)
	Send(ctx context.Context, channelID string, msg Outgoing) (*Message, error)
	BulkDelete(ctx context.Context, channelID string, messageIDs []string) (int, error)

	DirectMessage(ctx context.Context, userID string, msg Outgoing) error
	Member(ctx context.Context, userID string) (*Member, error)
	HasRole(ctx context.Context, userID, roleID string) (bool, error)
}
