package ports

import (
	"context"
	"time"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// ExpenseRepository defines persistence operations for expense records.
// All writes are single-record and append-only; reads are pure filters the
// balance engine replays.
type ExpenseRepository interface {
	// Insert persists a new expense and returns the assigned id.
	Insert(ctx context.Context, e *domain.Expense) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Expense, error)
	// Delete removes the record entirely (hard delete).
	Delete(ctx context.Context, id string) error
	// ListPersonalByPayer returns one-to-one expenses (no group) paid by userID.
	ListPersonalByPayer(ctx context.Context, userID string) ([]*domain.Expense, error)
	// ListPersonalInvolving returns one-to-one expenses where userID is payer
	// or appears in the splits.
	ListPersonalInvolving(ctx context.Context, userID string) ([]*domain.Expense, error)
	// ListPersonal returns every one-to-one expense (reminder scan).
	ListPersonal(ctx context.Context) ([]*domain.Expense, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Expense, error)
	// ListInvolvingSince returns all expenses involving userID dated at or
	// after since, group-scoped included (spending insights).
	ListInvolvingSince(ctx context.Context, userID string, since time.Time) ([]*domain.Expense, error)
}
