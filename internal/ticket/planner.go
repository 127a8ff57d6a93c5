package ticket

import (
	"github.com/alkmaar-rp/supportbot/internal/domain"
)

// Planner computes the target access-control list for a ticket channel.
// Plan is a total, deterministic function of its arguments: identical
// inputs yield an identical ordered rule list, so re-applying a plan is
// idempotent and unclaim can restore the unclaimed ACL exactly.
type Planner struct {
	Registry      *domain.CategoryRegistry
	EveryoneID    string
	BotID         string
	SupportRoleID string
}

// Plan builds the ACL for a ticket in the given claim state. Pass an empty
// claimantID for the unclaimed plan.
//
// Rules, in priority order: everyone is denied view; the creator and the
// bot get view+post; unclaimed tickets grant the category's responsible
// role view+post; claimed tickets grant the claimant view+post and
// downgrade the responsible role to view-only.
func (p *Planner) Plan(category domain.CategoryKey, creatorID, claimantID string) []domain.AccessRule {
	rules := []domain.AccessRule{
		{SubjectID: p.EveryoneID, View: false, Post: false},
		{SubjectID: creatorID, View: true, Post: true},
		{SubjectID: p.BotID, View: true, Post: true},
	}
	role := p.responsibleRole(category)
	if claimantID == "" {
		return append(rules, domain.AccessRule{SubjectID: role, View: true, Post: true})
	}
	rules = append(rules, domain.AccessRule{SubjectID: claimantID, View: true, Post: true})
	return append(rules, domain.AccessRule{SubjectID: role, View: true, Post: false})
}

// RestrictedPlan builds the closed ACL applied when a ticket moves into a
// restricted category: creator, responsible role and bot only.
func (p *Planner) RestrictedPlan(category domain.CategoryKey, creatorID string) []domain.AccessRule {
	return []domain.AccessRule{
		{SubjectID: p.EveryoneID, View: false, Post: false},
		{SubjectID: creatorID, View: true, Post: true},
		{SubjectID: p.responsibleRole(category), View: true, Post: true},
		{SubjectID: p.BotID, View: true, Post: true},
	}
}

// ResponsibleRole exposes the role a category's tickets are routed to.
func (p *Planner) ResponsibleRole(category domain.CategoryKey) string {
	return p.responsibleRole(category)
}

func (p *Planner) responsibleRole(category domain.CategoryKey) string {
	if cat, ok := p.Registry.Lookup(category); ok && cat.RoleID != "" {
		return cat.RoleID
	}
	return p.SupportRoleID
}
