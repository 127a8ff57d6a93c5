package domain

// AccessRule grants or denies view/post permission for one subject (a
// user, a role, or the everyone subject) on a ticket channel.
type AccessRule struct {
	SubjectID string
	View      bool
	Post      bool
}
