package events

import (
	"time"

	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated     EventType = "ticket_created"
	EventTicketClaimed     EventType = "ticket_claimed"
	EventTicketUnclaimed   EventType = "ticket_unclaimed"
	EventTicketMoved       EventType = "ticket_moved"
	EventTicketRenamed     EventType = "ticket_renamed"
	EventTicketClosed      EventType = "ticket_closed"
	EventTicketPurged      EventType = "ticket_purged"
	EventTicketPrioritySet EventType = "ticket_priority_set"
	EventPanelPosted       EventType = "panel_posted"
	EventStaffDismissed    EventType = "staff_dismissed"
	EventReviewSubmitted   EventType = "review_submitted"
	EventSignoffSubmitted  EventType = "signoff_submitted"
	EventClockIn           EventType = "clock_in"
	EventClockOut          EventType = "clock_out"
)

// Event represents an action emitted by services for auditing.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ChannelID string      `json:"channel_id,omitempty"`
	ActorID   string      `json:"actor_id,omitempty"`
	ActorTag  string      `json:"actor_tag,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category    domain.CategoryKey `json:"category"`
	CreatorID   string             `json:"creator_id"`
	ChannelName string             `json:"channel_name"`
}

// TicketClaimPayload payload for claim and unclaim.
type TicketClaimPayload struct {
	Category   domain.CategoryKey `json:"category"`
	ClaimantID string             `json:"claimant_id"`
}

// TicketMovedPayload payload.
type TicketMovedPayload struct {
	OldCategoryLabel string             `json:"old_category_label"`
	NewCategory      domain.CategoryKey `json:"new_category"`
	NewCategoryLabel string             `json:"new_category_label"`
	ChannelName      string             `json:"channel_name"`
}

// TicketRenamedPayload payload.
type TicketRenamedPayload struct {
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

// TicketClosedPayload payload.
type TicketClosedPayload struct {
	ChannelName   string `json:"channel_name"`
	CreatorLabel  string `json:"creator_label"`
	CategoryLabel string `json:"category_label"`
	Reason        string `json:"reason"`
}

// TicketPurgedPayload payload.
type TicketPurgedPayload struct {
	Deleted int `json:"deleted"`
}

// PanelPostedPayload payload.
type PanelPostedPayload struct {
	TargetChannelID string `json:"target_channel_id"`
}

// StaffDismissedPayload payload.
type StaffDismissedPayload struct {
	StaffID  string `json:"staff_id"`
	StaffTag string `json:"staff_tag"`
	Reason   string `json:"reason"`
}

// ReviewSubmittedPayload payload.
type ReviewSubmittedPayload struct {
	Stars    int    `json:"stars"`
	Feedback string `json:"feedback"`
}

// SignoffSubmittedPayload payload. Dates are already in DD-MM-YYYY form.
type SignoffSubmittedPayload struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// ClockPayload payload for clock in and clock out.
type ClockPayload struct {
	Name     string `json:"name"`
	Duration string `json:"duration,omitempty"`
}
