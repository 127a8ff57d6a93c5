package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/repository"
	"github.com/alkmaar-rp/supportbot/internal/ticket"
	"github.com/alkmaar-rp/supportbot/internal/transcript"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

const (
	openedNoticeTitle = "🎫 Nieuw Ticket"
	historyFetchLimit = 100
)

// TicketService coordinates the ticket lifecycle: create, claim, unclaim,
// move, rename, priority, purge and close. Every operation that rewrites
// ticket state takes the channel's lock first, so there is a single writer
// per ticket at any time.
type TicketService struct {
	store       repository.TicketStore
	platform    platform.Client
	planner     *ticket.Planner
	registry    *domain.CategoryRegistry
	transcripts *transcript.Renderer
	templates   *TemplateService
	reminders   *ReminderService
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	locks       *ticket.ChannelLocks
	cfg         TicketServiceConfig
}

// TicketServiceConfig carries the static identifiers the service needs.
type TicketServiceConfig struct {
	SupportRoleID  string
	AuditChannelID string
	TranscriptDir  string
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store       repository.TicketStore
	Platform    platform.Client
	Planner     *ticket.Planner
	Registry    *domain.CategoryRegistry
	Transcripts *transcript.Renderer
	Templates   *TemplateService
	Reminders   *ReminderService
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(cfg TicketServiceConfig, deps TicketDependencies) *TicketService {
	return &TicketService{
		store:       deps.Store,
		platform:    deps.Platform,
		planner:     deps.Planner,
		registry:    deps.Registry,
		transcripts: deps.Transcripts,
		templates:   deps.Templates,
		reminders:   deps.Reminders,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
		locks:       ticket.NewChannelLocks(),
		cfg:         cfg,
	}
}

var channelNamePattern = regexp.MustCompile(`[^a-z0-9\-]`)

// Create allocates a ticket channel for a user-selected category, writes
// the initial record and topic mirror, applies the unclaimed ACL and posts
// the pinned intro notice.
func (s *TicketService) Create(ctx context.Context, userID string, category domain.CategoryKey, details string) (*domain.Ticket, error) {
	cat, ok := s.registry.Lookup(category)
	if !ok {
		return nil, apperrors.NewValidationError("unknown ticket category", map[string]any{"category": string(category)})
	}

	member, err := s.platform.Member(ctx, userID)
	if err != nil {
		return nil, apperrors.NewNotFound("member", map[string]any{"user_id": userID})
	}

	name := channelNamePattern.ReplaceAllString(strings.ToLower(fmt.Sprintf("%s-%s", category, member.Tag)), "")
	topic := ticket.EncodeTopic(ticket.Meta{
		CreatorTag: member.Tag,
		CreatorID:  userID,
		Category:   category,
	})
	acl := s.planner.Plan(category, userID, "")

	channel, err := s.platform.CreateChannel(ctx, name, cat.ParentID, topic, acl)
	if err != nil {
		return nil, err
	}

	record := &domain.Ticket{
		ChannelID:  channel.ID,
		CreatorID:  userID,
		CreatorTag: member.Tag,
		Category:   category,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Put(ctx, record); err != nil {
		return nil, err
	}

	notice := platform.Outgoing{
		Content: fmt.Sprintf("<@%s> <@&%s>", userID, s.planner.ResponsibleRole(category)),
		Embeds: []platform.Embed{{
			Title: openedNoticeTitle,
			Color: "DarkGreen",
			Fields: []platform.EmbedField{
				{Name: "Aangemaakt door", Value: fmt.Sprintf("<@%s>", userID), Inline: true},
				{Name: "Categorie", Value: cat.Label, Inline: true},
				{Name: "Details", Value: defaultString(details, "Geen details opgegeven.")},
			},
			Footer:    fmt.Sprintf("User ID: %s", userID),
			Timestamp: time.Now(),
		}},
		Buttons: []platform.Button{
			{ID: "close_ticket", Label: "❌ Ticket sluiten", Style: "danger"},
			{ID: "claim_ticket", Label: "Claim Ticket", Style: "primary"},
		},
		Pin: true,
	}
	if _, err := s.platform.Send(ctx, channel.ID, notice); err != nil {
		s.logger.Warn("failed to post ticket intro", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	if category == domain.CategoryGangAanvraag {
		intake := s.templates.GangIntake(userID)
		if _, err := s.platform.Send(ctx, channel.ID, platform.Outgoing{Content: intake}); err != nil {
			s.logger.Warn("failed to post gang intake template", zap.String("channel_id", channel.ID), zap.Error(err))
		}
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketCreated,
		ChannelID: channel.ID,
		ActorID:   userID,
		ActorTag:  member.Tag,
		Payload: events.TicketCreatedPayload{
			Category:    category,
			CreatorID:   userID,
			ChannelName: channel.Name,
		},
	})
	return record, nil
}

// Claim records the caller as claimant and narrows the ACL: the claimant
// gets view+post and the responsible role is downgraded to view-only. Any
// subject outside {everyone, creator, claimant, bot, role} drops out
// because the full plan replaces the channel's ACL.
func (s *TicketService) Claim(ctx context.Context, actorID, actorTag, channelID string) error {
	unlock := s.locks.Acquire(channelID)
	defer unlock()

	authorized, err := s.platform.HasRole(ctx, actorID, s.cfg.SupportRoleID)
	if err != nil {
		return err
	}
	if !authorized {
		return apperrors.NewNotAuthorized("support role required to claim tickets")
	}

	record, err := s.resolveTicket(ctx, channelID)
	if err != nil {
		return err
	}
	if record.ClaimedBy != "" {
		return apperrors.NewAlreadyClaimed(record.ClaimedBy)
	}

	record.ClaimedBy = actorID
	if err := s.store.Put(ctx, record); err != nil {
		return err
	}
	if err := s.platform.SetChannelTopic(ctx, channelID, s.mirrorTopic(record)); err != nil {
		return err
	}
	if err := s.platform.ApplyAccessRules(ctx, channelID, s.planner.Plan(record.Category, record.CreatorID, actorID)); err != nil {
		return err
	}

	_, err = s.platform.Send(ctx, channelID, platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "🎫 Ticket Geclaimed",
			Description: fmt.Sprintf("Dit ticket is succesvol geclaimed door <@%s>.", actorID),
			Color:       "Green",
			Timestamp:   time.Now(),
		}},
	})
	if err != nil {
		s.logger.Warn("failed to post claim notice", zap.String("channel_id", channelID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketClaimed,
		ChannelID: channelID,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Payload:   events.TicketClaimPayload{Category: record.Category, ClaimantID: actorID},
	})
	return nil
}

// Unclaim strips the claim and restores the unclaimed plan exactly; only
// the recorded claimant may unclaim.
func (s *TicketService) Unclaim(ctx context.Context, actorID, actorTag, channelID string) error {
	unlock := s.locks.Acquire(channelID)
	defer unlock()

	record, err := s.resolveTicket(ctx, channelID)
	if err != nil {
		return err
	}
	if record.ClaimedBy != actorID {
		return apperrors.NewNotClaimant()
	}

	record.ClaimedBy = ""
	if err := s.store.Put(ctx, record); err != nil {
		return err
	}
	if err := s.platform.SetChannelTopic(ctx, channelID, s.mirrorTopic(record)); err != nil {
		return err
	}
	if err := s.platform.ApplyAccessRules(ctx, channelID, s.planner.Plan(record.Category, record.CreatorID, "")); err != nil {
		return err
	}

	_, err = s.platform.Send(ctx, channelID, platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "🎫 Ticket Unclaimed",
			Description: fmt.Sprintf("Dit ticket is unclaimed door <@%s>.", actorID),
			Color:       "DarkGreen",
			Timestamp:   time.Now(),
		}},
	})
	if err != nil {
		s.logger.Warn("failed to post unclaim notice", zap.String("channel_id", channelID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketUnclaimed,
		ChannelID: channelID,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Payload:   events.TicketClaimPayload{Category: record.Category, ClaimantID: actorID},
	})
	return nil
}

// Move reparents the channel under the target category's container and
// re-applies a category-specific ACL. Restricted categories get the closed
// plan: creator, responsible role and bot only. The recorded category is
// not rewritten; moving produces a new permission plan, not a new record.
func (s *TicketService) Move(ctx context.Context, actorID, actorTag, channelID string, target domain.CategoryKey) error {
	unlock := s.locks.Acquire(channelID)
	defer unlock()

	record, err := s.resolveTicket(ctx, channelID)
	if err != nil {
		return err
	}
	cat, ok := s.registry.Lookup(target)
	if !ok {
		return apperrors.NewValidationError("unknown ticket category", map[string]any{"category": string(target)})
	}
	if _, err := s.platform.Member(ctx, record.CreatorID); err != nil {
		return apperrors.NewNotFound("ticket creator", map[string]any{"user_id": record.CreatorID})
	}

	channel, err := s.platform.Channel(ctx, channelID)
	if err != nil {
		return err
	}
	oldLabel := s.parentLabel(channel.ParentID)

	if err := s.platform.SetChannelParent(ctx, channelID, cat.ParentID); err != nil {
		return err
	}

	var acl []domain.AccessRule
	if cat.Restricted {
		acl = s.planner.RestrictedPlan(target, record.CreatorID)
	} else {
		acl = s.planner.Plan(target, record.CreatorID, record.ClaimedBy)
	}
	if err := s.platform.ApplyAccessRules(ctx, channelID, acl); err != nil {
		return err
	}

	_, err = s.platform.Send(ctx, channelID, platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "✅ Ticket Verplaatst",
			Description: fmt.Sprintf("Dit ticket is succesvol verplaatst naar de categorie **%s**.", cat.Label),
			Color:       "DarkGreen",
			Footer:      "Verplaatst door " + actorTag,
			Timestamp:   time.Now(),
		}},
	})
	if err != nil {
		s.logger.Warn("failed to post move notice", zap.String("channel_id", channelID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketMoved,
		ChannelID: channelID,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Payload: events.TicketMovedPayload{
			OldCategoryLabel: oldLabel,
			NewCategory:      target,
			NewCategoryLabel: cat.Label,
			ChannelName:      channel.Name,
		},
	})
	return nil
}

// Rename changes the channel name. Renaming to the current name is a NoOp
// failure and writes no audit record.
func (s *TicketService) Rename(ctx context.Context, actorID, actorTag, channelID, newName string) error {
	channel, err := s.platform.Channel(ctx, channelID)
	if err != nil {
		return err
	}
	if channel.Name == newName {
		return apperrors.NewNoOp("the new name equals the current name")
	}
	if err := s.platform.SetChannelName(ctx, channelID, newName); err != nil {
		return err
	}

	_, err = s.platform.Send(ctx, channelID, platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "✏️ Ticket hernoemd",
			Description: fmt.Sprintf("Het ticketkanaal is succesvol hernoemd naar **%s**.", newName),
			Color:       "DarkGreen",
			Footer:      "Door: " + actorTag,
			Timestamp:   time.Now(),
		}},
	})
	if err != nil {
		s.logger.Warn("failed to post rename notice", zap.String("channel_id", channelID), zap.Error(err))
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketRenamed,
		ChannelID: channelID,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Payload:   events.TicketRenamedPayload{OldName: channel.Name, NewName: newName},
	})
	return nil
}

// SetPriority replaces the channel name's priority glyph with the tier's.
func (s *TicketService) SetPriority(ctx context.Context, channelID string, level int) error {
	priority, err := ticket.ParsePriority(level)
	if err != nil {
		return apperrors.NewValidationError("priority level must be 1-4", map[string]any{"level": level})
	}
	if _, err := s.resolveTicket(ctx, channelID); err != nil {
		return err
	}
	channel, err := s.platform.Channel(ctx, channelID)
	if err != nil {
		return err
	}
	if err := s.platform.SetChannelName(ctx, channelID, ticket.ApplyPriority(priority, channel.Name)); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketPrioritySet,
		ChannelID: channelID,
		Payload:   map[string]int{"level": level},
	})
	return nil
}

// Close renders the transcript from the most recent history, stores it,
// delivers it to the audit channel and best-effort to the creator with the
// review prompt, then destroys the channel. DM delivery failure is logged
// and swallowed; the close still succeeds.
func (s *TicketService) Close(ctx context.Context, actorID, actorTag, channelID, reason string) error {
	unlock := s.locks.Acquire(channelID)
	defer unlock()

	record, err := s.resolveTicket(ctx, channelID)
	if err != nil {
		return err
	}
	if s.reminders != nil {
		s.reminders.Cancel(channelID)
	}

	channel, err := s.platform.Channel(ctx, channelID)
	if err != nil {
		return err
	}
	reason = defaultString(reason, "Geen reden opgegeven.")

	creatorLabel := "Onbekend"
	if member, err := s.platform.Member(ctx, record.CreatorID); err == nil {
		creatorLabel = member.Tag
	}
	categoryLabel := s.registry.Label(record.Category)

	history, err := s.platform.RecentMessages(ctx, channelID, historyFetchLimit)
	if err != nil {
		return err
	}

	doc, err := s.transcripts.Render(transcript.Info{
		ChannelName:   channel.Name,
		CreatorLabel:  creatorLabel,
		CategoryLabel: categoryLabel,
		ClosedByLabel: actorTag,
		Reason:        reason,
		ClosedAt:      time.Now(),
	}, transcriptMessages(history))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.cfg.TranscriptDir, 0o755); err != nil {
		return err
	}
	transcriptPath := filepath.Join(s.cfg.TranscriptDir, channelID+".html")
	if err := os.WriteFile(transcriptPath, []byte(doc), 0o644); err != nil {
		return err
	}

	if s.cfg.AuditChannelID != "" {
		if _, err := s.platform.Send(ctx, s.cfg.AuditChannelID, platform.Outgoing{Files: []string{transcriptPath}}); err != nil {
			s.logger.Warn("failed to deliver transcript to audit channel", zap.String("channel_id", channelID), zap.Error(err))
		}
	}

	dm := platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "Loop jij tegen nieuwe vragen/problemen aan?",
			Description: s.templates.ClosedTicketFarewell(),
			Color:       "DarkGreen",
			Fields: []platform.EmbedField{
				{Name: "Ticket Naam", Value: channel.Name},
				{Name: "Gesloten door", Value: actorTag},
				{Name: "Reden", Value: reason},
			},
			Footer:    "Alkmaar Roleplay",
			Timestamp: time.Now(),
		}},
		Buttons: reviewButtons(),
		Files:   []string{transcriptPath},
	}
	if err := s.platform.DirectMessage(ctx, record.CreatorID, dm); err != nil {
		s.logger.Warn("failed to DM transcript to creator",
			zap.String("creator_id", record.CreatorID), zap.Error(err))
	}

	if err := os.Remove(transcriptPath); err != nil {
		s.logger.Warn("failed to remove local transcript", zap.String("path", transcriptPath), zap.Error(err))
	}

	if err := s.store.Delete(ctx, channelID); err != nil {
		return err
	}
	if err := s.platform.DeleteChannel(ctx, channelID); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketClosed,
		ChannelID: channelID,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Payload: events.TicketClosedPayload{
			ChannelName:   channel.Name,
			CreatorLabel:  creatorLabel,
			CategoryLabel: categoryLabel,
			Reason:        reason,
		},
	})
	return nil
}

// Purge bulk-deletes up to count recent messages, keeping the pinned
// ticket-opened notice and any pinned message.
func (s *TicketService) Purge(ctx context.Context, actorID, actorTag, channelID string, count int) (int, error) {
	authorized, err := s.platform.HasRole(ctx, actorID, s.cfg.SupportRoleID)
	if err != nil {
		return 0, err
	}
	if !authorized {
		return 0, apperrors.NewNotAuthorized("support role required to purge messages")
	}

	history, err := s.platform.RecentMessages(ctx, channelID, historyFetchLimit)
	if err != nil {
		return 0, err
	}

	deletable := make([]string, 0, len(history))
	for _, msg := range history {
		if msg.Pinned || hasEmbedTitle(msg, openedNoticeTitle) {
			continue
		}
		deletable = append(deletable, msg.ID)
	}
	if len(deletable) == 0 {
		return 0, apperrors.NewNotFound("messages to delete", nil)
	}
	if count > 0 && len(deletable) > count {
		deletable = deletable[len(deletable)-count:]
	}

	deleted, err := s.platform.BulkDelete(ctx, channelID, deletable)
	if err != nil {
		return 0, err
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketPurged,
		ChannelID: channelID,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Payload:   events.TicketPurgedPayload{Deleted: deleted},
	})
	return deleted, nil
}

// AddUser grants one subject view+post on the ticket channel.
func (s *TicketService) AddUser(ctx context.Context, channelID, userID string) error {
	if err := s.platform.GrantAccess(ctx, channelID, domain.AccessRule{SubjectID: userID, View: true, Post: true}); err != nil {
		return err
	}
	_, err := s.platform.Send(ctx, channelID, platform.Outgoing{
		Content: fmt.Sprintf("<@%s>", userID),
		Embeds: []platform.Embed{{
			Title:       "✅ Toegevoegd",
			Description: fmt.Sprintf("<@%s> is toegevoegd aan deze ticket.", userID),
			Color:       "Green",
		}},
	})
	return err
}

// RemoveUser strips one subject's view and post permission.
func (s *TicketService) RemoveUser(ctx context.Context, channelID, userID string) error {
	if err := s.platform.GrantAccess(ctx, channelID, domain.AccessRule{SubjectID: userID, View: false, Post: false}); err != nil {
		return err
	}
	_, err := s.platform.Send(ctx, channelID, platform.Outgoing{
		Content: fmt.Sprintf("<@%s>", userID),
		Embeds: []platform.Embed{{
			Title:       "🗑️ Verwijderd",
			Description: fmt.Sprintf("<@%s> is verwijderd uit deze ticket.", userID),
			Color:       "Red",
		}},
	})
	return err
}

// PostPanel publishes the ticket panel into the target channel.
func (s *TicketService) PostPanel(ctx context.Context, actorID, actorTag, targetChannelID string) error {
	options := []platform.SelectOption{}
	for _, key := range s.registry.Keys() {
		cat, _ := s.registry.Lookup(key)
		if !cat.InPanel {
			continue
		}
		options = append(options, platform.SelectOption{Label: cat.Label, Value: string(key), Emoji: "🎟️"})
	}

	_, err := s.platform.Send(ctx, targetChannelID, platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "🎫 Ticket Systeem",
			Description: s.templates.PanelIntro(),
			Color:       "DarkGreen",
			Footer:      "© Alkmaar RP - Copyright 2025 - All Rights Reserved",
		}},
		Select: &platform.Select{
			ID:          "ticket_select",
			Placeholder: "📂 Kies een categorie...",
			Options:     options,
		},
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventPanelPosted,
		ActorID:  actorID,
		ActorTag: actorTag,
		Payload:  events.PanelPostedPayload{TargetChannelID: targetChannelID},
	})
	return nil
}

// Ticket resolves the record for a channel, reconstructing it from the
// topic mirror if the store has no entry.
func (s *TicketService) Ticket(ctx context.Context, channelID string) (*domain.Ticket, error) {
	return s.resolveTicket(ctx, channelID)
}

func (s *TicketService) resolveTicket(ctx context.Context, channelID string) (*domain.Ticket, error) {
	record, err := s.store.Get(ctx, channelID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, repository.ErrTicketNotFound) {
		return nil, err
	}

	channel, err := s.platform.Channel(ctx, channelID)
	if err != nil {
		return nil, apperrors.NewNotFound("channel", map[string]any{"channel_id": channelID})
	}
	meta, err := ticket.DecodeTopic(channel.Topic)
	if err != nil {
		return nil, apperrors.NewMalformedTopic(channelID)
	}

	record = &domain.Ticket{
		ChannelID:  channelID,
		CreatorID:  meta.CreatorID,
		CreatorTag: meta.CreatorTag,
		Category:   meta.Category,
		ClaimedBy:  meta.ClaimedBy,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Put(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *TicketService) mirrorTopic(record *domain.Ticket) string {
	return ticket.EncodeTopic(ticket.Meta{
		CreatorTag: record.CreatorTag,
		CreatorID:  record.CreatorID,
		Category:   record.Category,
		ClaimedBy:  record.ClaimedBy,
	})
}

func (s *TicketService) parentLabel(parentID string) string {
	for _, key := range s.registry.Keys() {
		if cat, ok := s.registry.Lookup(key); ok && cat.ParentID == parentID {
			return cat.Label
		}
	}
	return "Onbekend"
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func transcriptMessages(history []platform.Message) []transcript.Message {
	messages := make([]transcript.Message, 0, len(history))
	for _, msg := range history {
		entry := transcript.Message{
			AuthorLabel: msg.AuthorTag,
			Automated:   msg.Automated,
			Timestamp:   msg.Timestamp,
			Body:        msg.Body,
		}
		for _, embed := range msg.Embeds {
			block := transcript.Block{
				Title:       embed.Title,
				Description: embed.Description,
				Footer:      embed.Footer,
			}
			for _, field := range embed.Fields {
				block.Fields = append(block.Fields, transcript.Field{Name: field.Name, Value: field.Value})
			}
			entry.Blocks = append(entry.Blocks, block)
		}
		messages = append(messages, entry)
	}
	return messages
}

func reviewButtons() []platform.Button {
	buttons := make([]platform.Button, 0, 5)
	for stars := 1; stars <= 5; stars++ {
		buttons = append(buttons, platform.Button{
			ID:    fmt.Sprintf("review_%d", stars),
			Label: strings.Repeat("⭐", stars),
			Style: "secondary",
		})
	}
	return buttons
}

func hasEmbedTitle(msg platform.Message, title string) bool {
	for _, embed := range msg.Embeds {
		if strings.Contains(embed.Title, title) {
			return true
		}
	}
	return false
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
