package domain

// CategoryKey identifies a ticket category.
type CategoryKey string

const (
	CategoryAlgemeneVraag          CategoryKey = "algemene_vraag"
	CategoryUnban                  CategoryKey = "unban"
	CategoryIngameRefund           CategoryKey = "ingame_refund"
	CategorySpelerKlacht           CategoryKey = "speler_klacht"
	CategoryStaffKlacht            CategoryKey = "staff_klacht"
	CategoryDonatie                CategoryKey = "donatie"
	CategorySollicitatie           CategoryKey = "sollicitatie"
	CategoryDevelopment            CategoryKey = "development"
	CategoryOverheidCoordinator    CategoryKey = "overheid_coordinator"
	CategoryOnderwereldCoordinator CategoryKey = "onderwereld_coordinator"
	CategoryGangAanvraag           CategoryKey = "gang_aanvraag"
	CategoryStaffCoordinator       CategoryKey = "staff_coordinator"
)

// Category describes one ticket category: its display label, the parent
// container channels are created under, and the role responsible for it.
// An empty RoleID means the generic support role handles the category.
// Restricted categories get a closed ACL on move: creator, responsible
// role and bot only.
type Category struct {
	Key        CategoryKey
	Label      string
	ParentID   string
	RoleID     string
	Restricted bool
	// InPanel marks categories end users can pick from the ticket panel.
	InPanel bool
}

// CategoryRegistry is the static category table, injected at process start.
type CategoryRegistry struct {
	order      []CategoryKey
	categories map[CategoryKey]Category
}

// NewCategoryRegistry builds a registry preserving the given order.
func NewCategoryRegistry(categories []Category) *CategoryRegistry {
	reg := &CategoryRegistry{
		order:      make([]CategoryKey, 0, len(categories)),
		categories: make(map[CategoryKey]Category, len(categories)),
	}
	for _, cat := range categories {
		if _, exists := reg.categories[cat.Key]; exists {
			continue
		}
		reg.order = append(reg.order, cat.Key)
		reg.categories[cat.Key] = cat
	}
	return reg
}

// Lookup returns the category for a key.
func (r *CategoryRegistry) Lookup(key CategoryKey) (Category, bool) {
	cat, ok := r.categories[key]
	return cat, ok
}

// Label returns the display label, falling back to the raw key for
// categories that are no longer registered.
func (r *CategoryRegistry) Label(key CategoryKey) string {
	if cat, ok := r.categories[key]; ok {
		return cat.Label
	}
	return string(key)
}

// Keys returns all registered keys in registration order.
func (r *CategoryRegistry) Keys() []CategoryKey {
	keys := make([]CategoryKey, len(r.order))
	copy(keys, r.order)
	return keys
}
