package domain

import "time"

// AuditRecord captures one staff-visible action for the audit trail.
type AuditRecord struct {
	ID        string
	Kind      string
	ChannelID string
	Actor     string
	Details   map[string]string
	CreatedAt time.Time
}

// Review is a satisfaction rating submitted after a ticket closes.
type Review struct {
	ID         string
	TicketName string
	Reviewer   string
	Stars      int
	Feedback   string
	CreatedAt  time.Time
}
