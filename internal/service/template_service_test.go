package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/alkmaar-rp/supportbot/pkg/util"
)

func TestWikiLetters(t *testing.T) {
	svc := NewTemplateService()

	topics := svc.WikiTopics()
	assert.Equal(t, []string{
		"algemene_vraag", "gang_aanvraag", "refund", "staff_klacht",
		"staff_overstap", "staff_sollicitatie", "unban",
	}, topics)

	for _, topic := range topics {
		letter, err := svc.Wiki(topic, "111", "999", "")
		require.NoError(t, err)
		assert.Contains(t, letter, "Beste <@111>")
		assert.Contains(t, letter, "<@999>")
		assert.Contains(t, letter, "Team Alkmaar RP")
	}

	_, err := svc.Wiki("bestaatniet", "111", "999", "")
	assert.True(t, apperrors.HasCode(err, "NOT_FOUND"))
}

func TestWikiReferralWording(t *testing.T) {
	svc := NewTemplateService()

	referred, err := svc.Wiki("refund", "111", "999", "555")
	require.NoError(t, err)
	assert.Contains(t, referred, "doorverwezen door <@555>")

	// a referral naming the addressee themselves falls back to the plain letter
	self, err := svc.Wiki("refund", "111", "999", "111")
	require.NoError(t, err)
	assert.NotContains(t, self, "doorverwezen")

	// letters without a referral variant ignore the referrer
	plain, err := svc.Wiki("algemene_vraag", "111", "999", "555")
	require.NoError(t, err)
	assert.NotContains(t, plain, "<@555>")
}

func TestRefundVerdict(t *testing.T) {
	svc := NewTemplateService()

	approved := svc.RefundVerdict(true, "111", "")
	assert.Contains(t, approved.Title, "Goedgekeurd")
	assert.Contains(t, approved.Description, "<@111>")

	rejected := svc.RefundVerdict(false, "111", "Geen bewijs")
	assert.Contains(t, rejected.Title, "Afgewezen")
	assert.Contains(t, rejected.Description, "Geen bewijs")
}

func TestSollicitatieVerdict(t *testing.T) {
	svc := NewTemplateService()

	accepted := svc.SollicitatieVerdict(true, "Coördinator#0001", "Moderator", "")
	require.Len(t, accepted, 3)
	assert.Contains(t, accepted[0].Title, "Aangenomen")
	assert.Contains(t, accepted[0].Description, "Moderator")
	assert.Contains(t, accepted[0].Description, "Coördinator#0001")
	assert.Contains(t, accepted[1].Title, "Belangrijk")
	assert.Contains(t, accepted[2].Title, "Staffregels")

	rejected := svc.SollicitatieVerdict(false, "Coördinator#0001", "", "Te weinig ervaring")
	require.Len(t, rejected, 1)
	assert.Contains(t, rejected[0].Title, "Afgewezen")
	assert.Contains(t, rejected[0].Description, "Te weinig ervaring")
}

func TestDismissalDM(t *testing.T) {
	svc := NewTemplateService()

	dm := svc.DismissalDM("Inactiviteit")
	assert.Contains(t, dm.Title, "ontslagen")
	assert.Contains(t, dm.Description, "Inactiviteit")
}

func TestGangIntakeMentionsApplicant(t *testing.T) {
	svc := NewTemplateService()

	form := svc.GangIntake("111")
	assert.Contains(t, form, "<@111>")
	assert.Contains(t, form, "Gangnaam")
}
