package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/repository"
)

// AuditNotifier consumes lifecycle events and renders them into the staff
// log channels, plus durable audit rows when Postgres is wired. Log
// delivery is best effort; a failed post never fails the originating
// operation.
type AuditNotifier struct {
	platform platform.Client
	audits   repository.AuditRepository
	logger   *zap.Logger

	auditChannelID   string
	signoffChannelID string
	clockChannelID   string
}

// AuditNotifierConfig carries the destination channel IDs.
type AuditNotifierConfig struct {
	AuditChannelID   string
	SignoffChannelID string
	ClockChannelID   string
}

// NewAuditNotifier constructs the notifier. The repository may be nil.
func NewAuditNotifier(cfg AuditNotifierConfig, client platform.Client, audits repository.AuditRepository, logger *zap.Logger) *AuditNotifier {
	return &AuditNotifier{
		platform:         client,
		audits:           audits,
		logger:           logger,
		auditChannelID:   cfg.AuditChannelID,
		signoffChannelID: cfg.SignoffChannelID,
		clockChannelID:   cfg.ClockChannelID,
	}
}

// Register subscribes the notifier to every event type it renders.
func (n *AuditNotifier) Register(dispatcher events.Dispatcher) {
	ticketEvents := []events.EventType{
		events.EventTicketCreated,
		events.EventTicketClaimed,
		events.EventTicketUnclaimed,
		events.EventTicketMoved,
		events.EventTicketRenamed,
		events.EventTicketClosed,
		events.EventTicketPurged,
		events.EventPanelPosted,
		events.EventStaffDismissed,
	}
	for _, eventType := range ticketEvents {
		dispatcher.Subscribe(eventType, n.handleTicketEvent)
	}
	dispatcher.Subscribe(events.EventSignoffSubmitted, n.handleSignoff)
	dispatcher.Subscribe(events.EventClockIn, n.handleClock)
	dispatcher.Subscribe(events.EventClockOut, n.handleClock)
}

func (n *AuditNotifier) handleTicketEvent(ctx context.Context, event events.Event) error {
	n.persist(ctx, event)
	if n.auditChannelID == "" {
		return nil
	}
	embed, ok := ticketEventEmbed(event)
	if !ok {
		return nil
	}
	if _, err := n.platform.Send(ctx, n.auditChannelID, platform.Outgoing{Embeds: []platform.Embed{embed}}); err != nil {
		n.logger.Warn("failed to post audit embed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
	return nil
}

func (n *AuditNotifier) handleSignoff(ctx context.Context, event events.Event) error {
	n.persist(ctx, event)
	payload, ok := event.Payload.(events.SignoffSubmittedPayload)
	if !ok || n.signoffChannelID == "" {
		return nil
	}
	embed := platform.Embed{
		Title: "📋 Nieuwe Afmelding",
		Fields: []platform.EmbedField{
			{Name: "Naam", Value: payload.Name, Inline: true},
			{Name: "Van", Value: payload.StartDate, Inline: true},
			{Name: "Tot", Value: payload.EndDate, Inline: true},
			{Name: "Reden", Value: payload.Reason},
		},
		Color:     "Orange",
		Footer:    "Alkmaar Roleplay",
		Timestamp: event.Timestamp,
	}
	if _, err := n.platform.Send(ctx, n.signoffChannelID, platform.Outgoing{Embeds: []platform.Embed{embed}}); err != nil {
		n.logger.Warn("failed to post signoff embed", zap.Error(err))
	}
	return nil
}

func (n *AuditNotifier) handleClock(ctx context.Context, event events.Event) error {
	n.persist(ctx, event)
	payload, ok := event.Payload.(events.ClockPayload)
	if !ok || n.clockChannelID == "" {
		return nil
	}
	var embed platform.Embed
	if event.Type == events.EventClockIn {
		embed = platform.Embed{
			Title:       "🟢 Ingeklokt",
			Description: fmt.Sprintf("**%s** is zojuist ingeklokt.", payload.Name),
			Color:       "Green",
			Timestamp:   event.Timestamp,
		}
	} else {
		embed = platform.Embed{
			Title:       "🔴 Uitgeklokt",
			Description: fmt.Sprintf("**%s** is uitgeklokt na **%s**.", payload.Name, payload.Duration),
			Color:       "Red",
			Timestamp:   event.Timestamp,
		}
	}
	if _, err := n.platform.Send(ctx, n.clockChannelID, platform.Outgoing{Embeds: []platform.Embed{embed}}); err != nil {
		n.logger.Warn("failed to post clock embed", zap.Error(err))
	}
	return nil
}

func (n *AuditNotifier) persist(ctx context.Context, event events.Event) {
	if n.audits == nil {
		return
	}
	record := auditRecordFor(event)
	if err := n.audits.Create(ctx, record); err != nil {
		n.logger.Warn("failed to persist audit record", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func ticketEventEmbed(event events.Event) (platform.Embed, bool) {
	switch payload := event.Payload.(type) {
	case events.TicketCreatedPayload:
		return platform.Embed{
			Title: "🎫 Ticket Aangemaakt",
			Fields: []platform.EmbedField{
				{Name: "Kanaal", Value: payload.ChannelName, Inline: true},
				{Name: "Categorie", Value: string(payload.Category), Inline: true},
				{Name: "Door", Value: fmt.Sprintf("<@%s>", payload.CreatorID), Inline: true},
			},
			Color:     "Green",
			Timestamp: event.Timestamp,
		}, true
	case events.TicketClaimPayload:
		title := "🙋 Ticket Geclaimed"
		color := "Blue"
		if event.Type == events.EventTicketUnclaimed {
			title = "↩️ Ticket Unclaimed"
			color = "Orange"
		}
		return platform.Embed{
			Title:       title,
			Description: fmt.Sprintf("<#%s> door **%s**", event.ChannelID, event.ActorTag),
			Color:       color,
			Timestamp:   event.Timestamp,
		}, true
	case events.TicketMovedPayload:
		return platform.Embed{
			Title: "📦 Ticket Verplaatst",
			Fields: []platform.EmbedField{
				{Name: "Kanaal", Value: payload.ChannelName, Inline: true},
				{Name: "Van", Value: payload.OldCategoryLabel, Inline: true},
				{Name: "Naar", Value: payload.NewCategoryLabel, Inline: true},
				{Name: "Door", Value: event.ActorTag},
			},
			Color:     "Blue",
			Timestamp: event.Timestamp,
		}, true
	case events.TicketRenamedPayload:
		return platform.Embed{
			Title:       "✏️ Ticket Hernoemd",
			Description: fmt.Sprintf("**%s** → **%s** door **%s**", payload.OldName, payload.NewName, event.ActorTag),
			Color:       "Blue",
			Timestamp:   event.Timestamp,
		}, true
	case events.TicketClosedPayload:
		return platform.Embed{
			Title: "🔒 Ticket Gesloten",
			Fields: []platform.EmbedField{
				{Name: "Kanaal", Value: payload.ChannelName, Inline: true},
				{Name: "Categorie", Value: payload.CategoryLabel, Inline: true},
				{Name: "Aangemaakt door", Value: payload.CreatorLabel, Inline: true},
				{Name: "Gesloten door", Value: event.ActorTag, Inline: true},
				{Name: "Reden", Value: payload.Reason},
			},
			Color:     "Red",
			Timestamp: event.Timestamp,
		}, true
	case events.TicketPurgedPayload:
		return platform.Embed{
			Title:       "🧹 Berichten Verwijderd",
			Description: fmt.Sprintf("**%d** berichten verwijderd in <#%s> door **%s**", payload.Deleted, event.ChannelID, event.ActorTag),
			Color:       "Orange",
			Timestamp:   event.Timestamp,
		}, true
	case events.PanelPostedPayload:
		return platform.Embed{
			Title:       "🗒️ Panel Geplaatst",
			Description: fmt.Sprintf("Ticketpanel geplaatst in <#%s> door **%s**", payload.TargetChannelID, event.ActorTag),
			Color:       "Blue",
			Timestamp:   event.Timestamp,
		}, true
	case events.StaffDismissedPayload:
		return platform.Embed{
			Title:       "👋 Staff Ontslagen",
			Description: fmt.Sprintf("**%s** is ontslagen door **%s**.\n**Reden:** %s", payload.StaffTag, event.ActorTag, payload.Reason),
			Color:       "DarkRed",
			Timestamp:   event.Timestamp,
		}, true
	}
	return platform.Embed{}, false
}

func auditRecordFor(event events.Event) *domain.AuditRecord {
	details := map[string]string{}
	switch payload := event.Payload.(type) {
	case events.TicketCreatedPayload:
		details["category"] = string(payload.Category)
		details["channel_name"] = payload.ChannelName
	case events.TicketMovedPayload:
		details["from"] = payload.OldCategoryLabel
		details["to"] = payload.NewCategoryLabel
	case events.TicketRenamedPayload:
		details["old_name"] = payload.OldName
		details["new_name"] = payload.NewName
	case events.TicketClosedPayload:
		details["reason"] = payload.Reason
		details["category"] = payload.CategoryLabel
	case events.TicketPurgedPayload:
		details["deleted"] = fmt.Sprintf("%d", payload.Deleted)
	case events.ClockPayload:
		details["name"] = payload.Name
		if payload.Duration != "" {
			details["duration"] = payload.Duration
		}
	}
	id := event.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := event.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return &domain.AuditRecord{
		ID:        id,
		Kind:      string(event.Type),
		ChannelID: event.ChannelID,
		Actor:     event.ActorTag,
		Details:   details,
		CreatedAt: createdAt,
	}
}
