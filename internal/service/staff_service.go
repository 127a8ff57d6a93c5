package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

// StaffService handles staff roster actions, currently only dismissal.
type StaffService struct {
	platform   platform.Client
	templates  *TemplateService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewStaffService constructs the service.
func NewStaffService(client platform.Client, templates *TemplateService, dispatcher events.Dispatcher, logger *zap.Logger) *StaffService {
	return &StaffService{platform: client, templates: templates, dispatcher: dispatcher, logger: logger}
}

// Dismiss removes a staff member: the dismissed member gets a best-effort
// DM (closed DMs are logged and swallowed) and an audit record is
// published. The returned embed announces the dismissal in the channel
// where the command ran.
func (s *StaffService) Dismiss(ctx context.Context, actorTag, staffID, reason string) (platform.Embed, error) {
	member, err := s.platform.Member(ctx, staffID)
	if err != nil {
		return platform.Embed{}, apperrors.NewNotFound("gebruiker", map[string]any{"user_id": staffID})
	}

	dm := platform.Outgoing{Embeds: []platform.Embed{s.templates.DismissalDM(reason)}}
	if err := s.platform.DirectMessage(ctx, staffID, dm); err != nil {
		s.logger.Warn("could not DM dismissed staff member",
			zap.String("user_id", staffID),
			zap.Error(err))
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventStaffDismissed,
		ActorTag:  actorTag,
		Timestamp: time.Now(),
		Payload: events.StaffDismissedPayload{
			StaffID:  staffID,
			StaffTag: member.Tag,
			Reason:   reason,
		},
	})

	return s.templates.DismissalNotice(member.Tag, reason), nil
}
