package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/events"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

const (
	signoffInputDateLayout   = "2006-01-02"
	signoffDisplayDateLayout = "02-01-2006"
)

// SignoffService validates staff absence notices submitted through the web
// form and hands them to the dispatcher for delivery.
type SignoffService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewSignoffService constructs the service.
func NewSignoffService(dispatcher events.Dispatcher, logger *zap.Logger) *SignoffService {
	return &SignoffService{dispatcher: dispatcher, logger: logger}
}

// Submit validates and publishes one absence notice. Dates arrive as
// YYYY-MM-DD from the form and are reformatted to DD-MM-YYYY for the
// announcement. The period must not end before it starts.
func (s *SignoffService) Submit(ctx context.Context, name, startDate, endDate, reason string) error {
	name = strings.TrimSpace(name)
	reason = strings.TrimSpace(reason)
	if name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if reason == "" {
		return apperrors.NewValidationError("reason is required", nil)
	}
	start, err := time.Parse(signoffInputDateLayout, startDate)
	if err != nil {
		return apperrors.NewValidationError("start date must be YYYY-MM-DD", map[string]any{"start_date": startDate})
	}
	end, err := time.Parse(signoffInputDateLayout, endDate)
	if err != nil {
		return apperrors.NewValidationError("end date must be YYYY-MM-DD", map[string]any{"end_date": endDate})
	}
	if end.Before(start) {
		return apperrors.NewValidationError("end date is before start date", map[string]any{
			"start_date": startDate,
			"end_date":   endDate,
		})
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventSignoffSubmitted,
		ActorTag:  name,
		Timestamp: time.Now(),
		Payload: events.SignoffSubmittedPayload{
			Name:      name,
			StartDate: start.Format(signoffDisplayDateLayout),
			EndDate:   end.Format(signoffDisplayDateLayout),
			Reason:    reason,
		},
	})
	return nil
}
