package ports

import (
	"context"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ledger"
)

// CreateGroupInput carries all data needed to create a group. The caller
// becomes an admin member; listed members join with member role.
type CreateGroupInput struct {
	Name        string
	Description string
	MemberIDs   []string
}

// GroupInfo is the lightweight group view embedded in read results.
type GroupInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MemberDetail is one group member with profile fields resolved.
type MemberDetail struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
	Role     string `json:"role"`
}

// MemberBalanceDetail is a member's simplified balance joined with profile
// details for rendering.
type MemberBalanceDetail struct {
	MemberDetail
	TotalBalance float64        `json:"total_balance"`
	Owes         []ledger.Entry `json:"owes"`
	OwedBy       []ledger.Entry `json:"owed_by"`
}

// GroupExpensesResult is the full group ledger view: history plus the
// simplified per-member balances.
type GroupExpensesResult struct {
	Group       GroupInfo               `json:"group"`
	Members     []MemberDetail          `json:"members"`
	Expenses    []*domain.Expense       `json:"expenses"`
	Settlements []*domain.Settlement    `json:"settlements"`
	Balances    []MemberBalanceDetail   `json:"balances"`
	UserLookup  map[string]MemberDetail `json:"user_lookup_map"`
}

// GroupSummary is a group annotated with the caller's net balance in it.
type GroupSummary struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	MemberCount int     `json:"member_count"`
	Balance     float64 `json:"balance"`
}

// GroupService defines group membership and group ledger operations.
// Membership is the authorization boundary for everything group-scoped.
type GroupService interface {
	Create(ctx context.Context, callerID string, input CreateGroupInput) (string, error)
	GetGroupExpenses(ctx context.Context, callerID, groupID string) (*GroupExpensesResult, error)
	ListForUser(ctx context.Context, callerID string) ([]GroupSummary, error)
}
