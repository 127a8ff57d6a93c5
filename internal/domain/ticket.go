package domain

import "time"

// TicketState enumerates lifecycle states for ticket channels.
type TicketState string

const (
	TicketStateUnclaimed TicketState = "UNCLAIMED"
	TicketStateClaimed   TicketState = "CLAIMED"
	TicketStateClosed    TicketState = "CLOSED"
)

// Ticket is the typed record for a ticket channel. The channel ID is the
// primary key; the channel topic string is kept as a human-readable mirror
// of this record and doubles as the recovery path when the record is lost.
type Ticket struct {
	ChannelID  string      `json:"channel_id"`
	CreatorID  string      `json:"creator_id"`
	CreatorTag string      `json:"creator_tag"`
	Category   CategoryKey `json:"category"`
	ClaimedBy  string      `json:"claimed_by,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
}

// State derives the lifecycle state from the claim field. A closed ticket
// has no record at all, so State never reports TicketStateClosed.
func (t *Ticket) State() TicketState {
	if t.ClaimedBy != "" {
		return TicketStateClaimed
	}
	return TicketStateUnclaimed
}
