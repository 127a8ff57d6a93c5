package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alkmaar-rp/supportbot/internal/domain"
	"github.com/alkmaar-rp/supportbot/internal/events"
	"github.com/alkmaar-rp/supportbot/internal/platform"
	"github.com/alkmaar-rp/supportbot/internal/repository"
	"github.com/alkmaar-rp/supportbot/internal/ticket"
	"github.com/alkmaar-rp/supportbot/internal/transcript"
	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

type ticketFixture struct {
	svc    *TicketService
	client *platform.MemoryClient
	store  repository.TicketStore
	audit  string
}

func newTicketFixture(t *testing.T) *ticketFixture {
	t.Helper()

	client := platform.NewMemoryClient("bot")
	client.AddMember("111", "piet#0001", "Piet")
	client.AddMember("222", "staff#0002", "Staffer", "role-support")
	client.AddMember("333", "andere#0003", "Andere", "role-support")

	audit, err := client.CreateChannel(context.Background(), "audit-log", "", "", nil)
	require.NoError(t, err)

	store, err := repository.NewFileTicketStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	registry := domain.NewCategoryRegistry([]domain.Category{
		{Key: domain.CategoryUnban, Label: "Unban", ParentID: "cat-unban", RoleID: "role-unban", InPanel: true},
		{Key: domain.CategoryDonatie, Label: "Donatie", ParentID: "cat-donatie", InPanel: true},
		{Key: domain.CategoryDevelopment, Label: "Development", ParentID: "cat-dev", RoleID: "role-dev", Restricted: true},
		{Key: domain.CategoryGangAanvraag, Label: "Gang Aanvraag", ParentID: "cat-gang", RoleID: "role-gang", InPanel: true},
	})

	svc := NewTicketService(TicketServiceConfig{
		SupportRoleID:  "role-support",
		AuditChannelID: audit.ID,
		TranscriptDir:  t.TempDir(),
	}, TicketDependencies{
		Store:    store,
		Platform: client,
		Planner: &ticket.Planner{
			Registry:      registry,
			EveryoneID:    "everyone",
			BotID:         "bot",
			SupportRoleID: "role-support",
		},
		Registry:    registry,
		Transcripts: transcript.NewRenderer(),
		Templates:   NewTemplateService(),
		Dispatcher:  events.NewInMemoryDispatcher(),
		Logger:      zap.NewNop(),
	})

	return &ticketFixture{svc: svc, client: client, store: store, audit: audit.ID}
}

func (f *ticketFixture) create(t *testing.T, category domain.CategoryKey) *domain.Ticket {
	t.Helper()
	record, err := f.svc.Create(context.Background(), "111", category, "mijn vraag")
	require.NoError(t, err)
	return record
}

func TestCreateTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	record := f.create(t, domain.CategoryUnban)
	assert.Equal(t, "111", record.CreatorID)
	assert.Equal(t, domain.TicketStateUnclaimed, record.State())

	channel, err := f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, "cat-unban", channel.ParentID)
	assert.Equal(t, "unban-piet0001", channel.Name)

	meta, err := ticket.DecodeTopic(channel.Topic)
	require.NoError(t, err)
	assert.Equal(t, "111", meta.CreatorID)
	assert.Equal(t, domain.CategoryUnban, meta.Category)

	acl := f.client.ACL(record.ChannelID)
	require.Len(t, acl, 4)
	assert.Equal(t, "role-unban", acl[3].SubjectID)

	history, err := f.client.RecentMessages(ctx, record.ChannelID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.True(t, history[0].Pinned)

	stored, err := f.store.Get(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, record.CreatorID, stored.CreatorID)
}

func TestCreateTicketUnknownCategory(t *testing.T) {
	f := newTicketFixture(t)

	_, err := f.svc.Create(context.Background(), "111", "onzin", "")
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
}

func TestCreateGangTicketPostsIntake(t *testing.T) {
	f := newTicketFixture(t)
	record := f.create(t, domain.CategoryGangAanvraag)

	history, err := f.client.RecentMessages(context.Background(), record.ChannelID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Contains(t, history[1].Body, "Gangnaam")
}

func TestClaimTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	require.NoError(t, f.svc.Claim(ctx, "222", "staff#0002", record.ChannelID))

	stored, err := f.store.Get(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, "222", stored.ClaimedBy)
	assert.Equal(t, domain.TicketStateClaimed, stored.State())

	channel, err := f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)
	meta, err := ticket.DecodeTopic(channel.Topic)
	require.NoError(t, err)
	assert.Equal(t, "222", meta.ClaimedBy)

	acl := f.client.ACL(record.ChannelID)
	require.Len(t, acl, 5)
	assert.Equal(t, domain.AccessRule{SubjectID: "222", View: true, Post: true}, acl[3])
	assert.Equal(t, domain.AccessRule{SubjectID: "role-unban", View: true, Post: false}, acl[4])
}

func TestClaimRequiresSupportRole(t *testing.T) {
	f := newTicketFixture(t)
	record := f.create(t, domain.CategoryUnban)

	err := f.svc.Claim(context.Background(), "111", "piet#0001", record.ChannelID)
	assert.True(t, apperrors.HasCode(err, "NOT_AUTHORIZED"))
}

func TestClaimAlreadyClaimed(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	require.NoError(t, f.svc.Claim(ctx, "222", "staff#0002", record.ChannelID))
	err := f.svc.Claim(ctx, "333", "andere#0003", record.ChannelID)
	assert.True(t, apperrors.HasCode(err, "ALREADY_CLAIMED"))
}

func TestUnclaimRestoresACLExactly(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)
	before := f.client.ACL(record.ChannelID)

	require.NoError(t, f.svc.Claim(ctx, "222", "staff#0002", record.ChannelID))
	require.NoError(t, f.svc.Unclaim(ctx, "222", "staff#0002", record.ChannelID))

	assert.Equal(t, before, f.client.ACL(record.ChannelID))

	channel, err := f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)
	meta, err := ticket.DecodeTopic(channel.Topic)
	require.NoError(t, err)
	assert.Empty(t, meta.ClaimedBy)
}

func TestUnclaimByNonClaimant(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	require.NoError(t, f.svc.Claim(ctx, "222", "staff#0002", record.ChannelID))
	err := f.svc.Unclaim(ctx, "333", "andere#0003", record.ChannelID)
	assert.True(t, apperrors.HasCode(err, "NOT_CLAIMANT"))
}

func TestResolveTicketRecoversFromTopic(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	// simulate a lost record; the topic mirror is the recovery path
	require.NoError(t, f.store.Delete(ctx, record.ChannelID))

	recovered, err := f.svc.Ticket(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, "111", recovered.CreatorID)
	assert.Equal(t, domain.CategoryUnban, recovered.Category)

	stored, err := f.store.Get(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, recovered.CreatorID, stored.CreatorID)
}

func TestResolveTicketMalformedTopic(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	plain, err := f.client.CreateChannel(ctx, "algemeen", "", "gewoon een kanaal", nil)
	require.NoError(t, err)

	_, err = f.svc.Ticket(ctx, plain.ID)
	assert.True(t, apperrors.HasCode(err, "MALFORMED_TOPIC"))
}

func TestMoveTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	require.NoError(t, f.svc.Move(ctx, "222", "staff#0002", record.ChannelID, domain.CategoryDonatie))

	channel, err := f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, "cat-donatie", channel.ParentID)

	// the recorded category does not change on move
	stored, err := f.store.Get(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryUnban, stored.Category)

	// donatie has no dedicated role, so the support role takes over
	acl := f.client.ACL(record.ChannelID)
	require.Len(t, acl, 4)
	assert.Equal(t, "role-support", acl[3].SubjectID)
}

func TestMoveToRestrictedCategory(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)
	require.NoError(t, f.svc.Claim(ctx, "222", "staff#0002", record.ChannelID))

	require.NoError(t, f.svc.Move(ctx, "222", "staff#0002", record.ChannelID, domain.CategoryDevelopment))

	acl := f.client.ACL(record.ChannelID)
	require.Len(t, acl, 4)
	subjects := make([]string, 0, len(acl))
	for _, rule := range acl {
		subjects = append(subjects, rule.SubjectID)
	}
	assert.ElementsMatch(t, []string{"everyone", "111", "role-dev", "bot"}, subjects)
	// the previous claimant drops out of the closed plan
	assert.NotContains(t, subjects, "222")
}

func TestRenameNoOp(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	channel, err := f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)

	err = f.svc.Rename(ctx, "222", "staff#0002", record.ChannelID, channel.Name)
	assert.True(t, apperrors.HasCode(err, "NO_OP"))
}

func TestSetPriority(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	require.NoError(t, f.svc.SetPriority(ctx, record.ChannelID, 1))
	channel, err := f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(channel.Name, "🔴 "))

	// re-prioritizing replaces the glyph instead of stacking
	require.NoError(t, f.svc.SetPriority(ctx, record.ChannelID, 3))
	channel, err = f.client.Channel(ctx, record.ChannelID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(channel.Name, "🟢 "))
	assert.Equal(t, 1, strings.Count(channel.Name, " "))

	err = f.svc.SetPriority(ctx, record.ChannelID, 9)
	assert.True(t, apperrors.HasCode(err, "VALIDATION_FAILED"))
}

func TestCloseTicket(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	require.NoError(t, f.svc.Close(ctx, "222", "staff#0002", record.ChannelID, "Opgelost"))

	_, err := f.client.Channel(ctx, record.ChannelID)
	assert.ErrorIs(t, err, platform.ErrChannelNotFound)

	_, err = f.store.Get(ctx, record.ChannelID)
	assert.ErrorIs(t, err, repository.ErrTicketNotFound)

	auditHistory, err := f.client.RecentMessages(ctx, f.audit, 10)
	require.NoError(t, err)
	assert.Len(t, auditHistory, 1)

	dms := f.client.DirectMessages("111")
	require.Len(t, dms, 1)
	assert.Len(t, dms[0].Buttons, 5)
	assert.Equal(t, "review_1", dms[0].Buttons[0].ID)
	require.Len(t, dms[0].Files, 1)
}

func TestCloseSucceedsWhenDMBlocked(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)
	f.client.BlockDirectMessages("111")

	require.NoError(t, f.svc.Close(ctx, "222", "staff#0002", record.ChannelID, ""))

	_, err := f.client.Channel(ctx, record.ChannelID)
	assert.ErrorIs(t, err, platform.ErrChannelNotFound)
}

func TestPurgeKeepsPinnedIntro(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()
	record := f.create(t, domain.CategoryUnban)

	for i := 0; i < 3; i++ {
		f.client.SeedMessage(platform.Message{ChannelID: record.ChannelID, AuthorID: "111", Body: "spam"})
	}

	deleted, err := f.svc.Purge(ctx, "222", "staff#0002", record.ChannelID, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)

	history, err := f.client.RecentMessages(ctx, record.ChannelID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Pinned)
}

func TestPurgeRequiresSupportRole(t *testing.T) {
	f := newTicketFixture(t)
	record := f.create(t, domain.CategoryUnban)

	_, err := f.svc.Purge(context.Background(), "111", "piet#0001", record.ChannelID, 0)
	assert.True(t, apperrors.HasCode(err, "NOT_AUTHORIZED"))
}

func TestPostPanel(t *testing.T) {
	f := newTicketFixture(t)
	ctx := context.Background()

	target, err := f.client.CreateChannel(ctx, "tickets", "", "", nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.PostPanel(ctx, "222", "staff#0002", target.ID))

	history, err := f.client.RecentMessages(ctx, target.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
}
