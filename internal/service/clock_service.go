package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/repository"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

// ClockService wraps the staff time-clock ledger with conflict mapping and
// audit events. Sessions are keyed by display name, matching the ledger
// file's layout.
type ClockService struct {
	ledger     *repository.ClockLedger
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewClockService constructs the service.
func NewClockService(ledger *repository.ClockLedger, dispatcher events.Dispatcher, logger *zap.Logger) *ClockService {
	return &ClockService{ledger: ledger, dispatcher: dispatcher, logger: logger}
}

// ClockIn opens a session for the named staff member.
func (s *ClockService) ClockIn(ctx context.Context, name string) error {
	if name == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if err := s.ledger.ClockIn(name, time.Now()); err != nil {
		if errors.Is(err, repository.ErrAlreadyClockedIn) {
			// the clock surface reports session conflicts as bad requests
			return apperrors.NewDomainError("CONFLICT", "already clocked in", http.StatusBadRequest, map[string]any{"name": name})
		}
		return err
	}
	s.publish(ctx, events.EventClockIn, events.ClockPayload{Name: name})
	return nil
}

// ClockOut closes the open session and returns its formatted duration.
func (s *ClockService) ClockOut(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", apperrors.NewValidationError("name is required", nil)
	}
	elapsed, err := s.ledger.ClockOut(name, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotClockedIn) {
			return "", apperrors.NewDomainError("CONFLICT", "not clocked in", http.StatusBadRequest, map[string]any{"name": name})
		}
		return "", err
	}
	duration := repository.FormatClockDuration(elapsed)
	s.publish(ctx, events.EventClockOut, events.ClockPayload{Name: name, Duration: duration})
	return duration, nil
}

// Leaderboard returns all staff sorted by accumulated time, most first.
func (s *ClockService) Leaderboard(ctx context.Context) ([]domain.ClockRank, error) {
	return s.ledger.Leaderboard()
}

// Status reports whether the named staff member has an open session and
// their accumulated time so far.
func (s *ClockService) Status(ctx context.Context, name string) (clockedIn bool, total string, err error) {
	entry, ok, err := s.ledger.Entry(name)
	if err != nil {
		return false, "", err
	}
	if !ok {
		return false, repository.FormatClockDuration(0), nil
	}
	return entry.ClockedIn != nil, repository.FormatClockDuration(time.Duration(entry.TotalTime) * time.Second), nil
}

func (s *ClockService) publish(ctx context.Context, eventType events.EventType, payload events.ClockPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorTag:  payload.Name,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
