package ports

import "context"

// ContactGroup is a group the caller belongs to, shown alongside personal
// contacts in the contact list.
type ContactGroup struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"member_count"`
}

// ContactList holds everyone the caller has transacted with one-on-one,
// plus all of the caller's groups.
type ContactList struct {
	Users  []UserSummary  `json:"users"`
	Groups []ContactGroup `json:"groups"`
}

// ContactService resolves the people and groups a caller can split with.
type ContactService interface {
	// Search matches users by name or email prefix. Queries shorter than
	// two characters return an empty result. The caller is never included.
	Search(ctx context.Context, callerID, query string) ([]UserSummary, error)
	ListContacts(ctx context.Context, callerID string) (*ContactList, error)
}
