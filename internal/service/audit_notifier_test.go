package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
)

func newNotifierFixture(t *testing.T) (events.Dispatcher, *platform.MemoryClient, AuditNotifierConfig) {
	t.Helper()
	client := platform.NewMemoryClient("bot")
	ctx := context.Background()

	audit, err := client.CreateChannel(ctx, "audit-log", "", "", nil)
	require.NoError(t, err)
	signoff, err := client.CreateChannel(ctx, "signoff-log", "", "", nil)
	require.NoError(t, err)
	clock, err := client.CreateChannel(ctx, "clock-log", "", "", nil)
	require.NoError(t, err)

	cfg := AuditNotifierConfig{
		AuditChannelID:   audit.ID,
		SignoffChannelID: signoff.ID,
		ClockChannelID:   clock.ID,
	}
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditNotifier(cfg, client, nil, zap.NewNop()).Register(dispatcher)
	return dispatcher, client, cfg
}

func TestNotifierRoutesTicketEvents(t *testing.T) {
	dispatcher, client, cfg := newNotifierFixture(t)
	ctx := context.Background()

	_ = dispatcher.Publish(ctx, events.Event{
		Type:      events.EventTicketClosed,
		ChannelID: "chan-9",
		ActorTag:  "staff#0002",
		Timestamp: time.Now(),
		Payload: events.TicketClosedPayload{
			ChannelName:   "unban-piet",
			CreatorLabel:  "piet#0001",
			CategoryLabel: "Unban",
			Reason:        "Opgelost",
		},
	})

	history, err := client.RecentMessages(ctx, cfg.AuditChannelID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Embeds, 1)
	assert.Equal(t, "🔒 Ticket Gesloten", history[0].Embeds[0].Title)
}

func TestNotifierRoutesSignoffToOwnChannel(t *testing.T) {
	dispatcher, client, cfg := newNotifierFixture(t)
	ctx := context.Background()

	_ = dispatcher.Publish(ctx, events.Event{
		Type:      events.EventSignoffSubmitted,
		ActorTag:  "Piet",
		Timestamp: time.Now(),
		Payload: events.SignoffSubmittedPayload{
			Name:      "Piet",
			StartDate: "01-06-2025",
			EndDate:   "08-06-2025",
			Reason:    "Vakantie",
		},
	})

	signoffHistory, err := client.RecentMessages(ctx, cfg.SignoffChannelID, 10)
	require.NoError(t, err)
	assert.Len(t, signoffHistory, 1)

	auditHistory, err := client.RecentMessages(ctx, cfg.AuditChannelID, 10)
	require.NoError(t, err)
	assert.Empty(t, auditHistory)
}

func TestNotifierRoutesClockEvents(t *testing.T) {
	dispatcher, client, cfg := newNotifierFixture(t)
	ctx := context.Background()

	_ = dispatcher.Publish(ctx, events.Event{
		Type:      events.EventClockOut,
		ActorTag:  "Piet",
		Timestamp: time.Now(),
		Payload:   events.ClockPayload{Name: "Piet", Duration: "1u 1m 1s"},
	})

	history, err := client.RecentMessages(ctx, cfg.ClockChannelID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Contains(t, history[0].Embeds[0].Description, "1u 1m 1s")
}

func TestNotifierTicketEmbedVariants(t *testing.T) {
	tests := []struct {
		name  string
		event events.Event
		title string
	}{
		{
			name: "created",
			event: events.Event{
				Type:    events.EventTicketCreated,
				Payload: events.TicketCreatedPayload{Category: domain.CategoryUnban, CreatorID: "111", ChannelName: "unban-piet"},
			},
			title: "🎫 Ticket Aangemaakt",
		},
		{
			name: "claimed",
			event: events.Event{
				Type:    events.EventTicketClaimed,
				Payload: events.TicketClaimPayload{Category: domain.CategoryUnban, ClaimantID: "222"},
			},
			title: "🙋 Ticket Geclaimed",
		},
		{
			name: "unclaimed",
			event: events.Event{
				Type:    events.EventTicketUnclaimed,
				Payload: events.TicketClaimPayload{Category: domain.CategoryUnban, ClaimantID: "222"},
			},
			title: "↩️ Ticket Unclaimed",
		},
		{
			name: "purged",
			event: events.Event{
				Type:    events.EventTicketPurged,
				Payload: events.TicketPurgedPayload{Deleted: 4},
			},
			title: "🧹 Berichten Verwijderd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed, ok := ticketEventEmbed(tt.event)
			require.True(t, ok)
			assert.Equal(t, tt.title, embed.Title)
		})
	}
}
