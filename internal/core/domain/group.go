package domain

import "time"

const (
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

// Member is one user's membership in a group. Membership is the authorization
// boundary: only members may write group-scoped records or read group balances.
type Member struct {
	UserID   string    `json:"user_id" bson:"user_id"`
	Role     string    `json:"role" bson:"role"`
	JoinedAt time.Time `json:"joined_at" bson:"joined_at"`
}

// Group is a named set of members that share expenses.
type Group struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	Members     []Member  `json:"members" bson:"members"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// HasMember reports whether userID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// MemberIDs returns the member user ids in membership order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}
