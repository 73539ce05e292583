package ports

import (
	"context"
	"time"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// SplitInput is one participant's share as submitted by the caller.
type SplitInput struct {
	UserID string
	Amount float64
	Paid   bool
}

// CreateExpenseInput carries all data needed to record a new expense.
// When Splits is empty the service computes shares itself from SplitType and
// ParticipantIDs (even initialization for every type).
type CreateExpenseInput struct {
	Description    string
	Amount         float64
	Category       string
	Date           time.Time
	PaidByUserID   string
	SplitType      domain.SplitType
	Splits         []SplitInput
	ParticipantIDs []string
	GroupID        string
}

// UserSummary is the lightweight user view embedded in read results.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

// BetweenUsersResult is the full one-to-one ledger view between the caller
// and one counterpart: shared history plus the signed net balance (positive
// means the counterpart owes the caller).
type BetweenUsersResult struct {
	Expenses    []*domain.Expense    `json:"expenses"`
	Settlements []*domain.Settlement `json:"settlements"`
	OtherUser   UserSummary          `json:"other_user"`
	Balance     float64              `json:"balance"`
}

// ExpenseService defines the expense ledger write and read operations.
type ExpenseService interface {
	Create(ctx context.Context, callerID string, input CreateExpenseInput) (string, error)
	Delete(ctx context.Context, callerID, expenseID string) error
	GetBetweenUsers(ctx context.Context, callerID, otherUserID string) (*BetweenUsersResult, error)
}
