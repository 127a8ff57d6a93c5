package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/repository"
)

// ReminderService tracks no-response alerts. StartWatch arms a timer for a
// channel; activity in the channel cancels it, and expiry escalates by
// notifying the creator and destroying the ticket. All timers live in one
// registry keyed by channel, so closing a ticket cancels any pending alert.
type ReminderService struct {
	platform platform.Client
	store    repository.TicketStore
	logger   *zap.Logger
	window   time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewReminderService constructs the service with the configured alert window.
func NewReminderService(client platform.Client, store repository.TicketStore, window time.Duration, logger *zap.Logger) *ReminderService {
	return &ReminderService{
		platform: client,
		store:    store,
		logger:   logger,
		window:   window,
		timers:   make(map[string]*time.Timer),
	}
}

// StartWatch posts the warning embed into the channel and arms the expiry
// timer. Re-arming an already watched channel resets the countdown.
func (s *ReminderService) StartWatch(ctx context.Context, channelID, creatorID string) error {
	hours := int(s.window.Hours())
	_, err := s.platform.Send(ctx, channelID, platform.Outgoing{
		Content: fmt.Sprintf("<@%s>", creatorID),
		Embeds: []platform.Embed{{
			Title: "⚠️ Reactie vereist",
			Description: fmt.Sprintf(
				"Er is al een tijdje geen reactie meer geweest in dit ticket. Reageer binnen **%d uur**, anders wordt dit ticket automatisch gesloten.", hours),
			Color:     "Orange",
			Timestamp: time.Now(),
		}},
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[channelID]; ok {
		timer.Stop()
	}
	s.timers[channelID] = time.AfterFunc(s.window, func() {
		s.expire(channelID, creatorID)
	})
	return nil
}

// NotifyMessage cancels the pending alert for a channel, if any. Automated
// messages do not count as activity; the caller filters those.
func (s *ReminderService) NotifyMessage(channelID string) {
	s.Cancel(channelID)
}

// Cancel drops the timer for a channel. Safe to call for unwatched channels.
func (s *ReminderService) Cancel(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.timers[channelID]; ok {
		timer.Stop()
		delete(s.timers, channelID)
	}
}

// Watching reports whether a channel has an armed timer.
func (s *ReminderService) Watching(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[channelID]
	return ok
}

func (s *ReminderService) expire(channelID, creatorID string) {
	s.Cancel(channelID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.platform.Send(ctx, channelID, platform.Outgoing{
		Embeds: []platform.Embed{{
			Title:       "⏰ Ticket gesloten",
			Description: fmt.Sprintf("<@%s> heeft niet op tijd gereageerd. Dit ticket wordt automatisch gesloten.", creatorID),
			Color:       "Red",
			Timestamp:   time.Now(),
		}},
	})
	if err != nil {
		s.logger.Warn("failed to post expiry notice", zap.String("channel_id", channelID), zap.Error(err))
	}

	if err := s.store.Delete(ctx, channelID); err != nil {
		s.logger.Warn("failed to drop expired ticket record", zap.String("channel_id", channelID), zap.Error(err))
	}
	if err := s.platform.DeleteChannel(ctx, channelID); err != nil {
		s.logger.Error("failed to delete expired ticket channel", zap.String("channel_id", channelID), zap.Error(err))
	}
}
