package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

func newReviewFixture(t *testing.T, ttl time.Duration) (*ReviewService, *platform.MemoryClient, string) {
	t.Helper()
	client := platform.NewMemoryClient("bot")
	channel, err := client.CreateChannel(context.Background(), "reviews", "", "", nil)
	require.NoError(t, err)
	svc := NewReviewService(nil, client, events.NewInMemoryDispatcher(), "test-secret", ttl, channel.ID, zap.NewNop())
	return svc, client, channel.ID
}

func TestHandleRoundTrip(t *testing.T) {
	svc, _, _ := newReviewFixture(t, time.Hour)

	handle, err := svc.IssueHandle("111", 4)
	require.NoError(t, err)

	parsed, err := svc.ParseHandle(handle)
	require.NoError(t, err)
	assert.Equal(t, ReviewHandle{UserID: "111", Stars: 4}, parsed)
}

func TestIssueHandleValidatesStars(t *testing.T) {
	svc, _, _ := newReviewFixture(t, time.Hour)

	for _, stars := range []int{0, 6, -1} {
		_, err := svc.IssueHandle("111", stars)
		assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
	}
}

func TestParseHandleRejectsTampering(t *testing.T) {
	svc, _, _ := newReviewFixture(t, time.Hour)

	handle, err := svc.IssueHandle("111", 5)
	require.NoError(t, err)

	_, err = svc.ParseHandle(handle + "x")
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))

	other := NewReviewService(nil, platform.NewMemoryClient("bot"), nil, "other-secret", time.Hour, "", zap.NewNop())
	_, err = other.ParseHandle(handle)
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
}

func TestParseHandleRejectsExpired(t *testing.T) {
	svc, _, _ := newReviewFixture(t, -time.Minute)

	handle, err := svc.IssueHandle("111", 3)
	require.NoError(t, err)

	_, err = svc.ParseHandle(handle)
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
}

func TestSubmitPostsReviewEmbed(t *testing.T) {
	svc, client, channelID := newReviewFixture(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, ReviewHandle{UserID: "111", Stars: 5}, "piet#0001", "Top geholpen!"))

	history, err := client.RecentMessages(ctx, channelID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Embeds, 1)
	assert.Equal(t, "🌟 Nieuwe Review", history[0].Embeds[0].Title)
	assert.Equal(t, "⭐⭐⭐⭐⭐", history[0].Embeds[0].Fields[0].Value)
}
