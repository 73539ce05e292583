package ports

import (
	"context"
	"time"
)

// CounterpartyBalance is one entry in the dashboard owe lists.
type CounterpartyBalance struct {
	UserID   string  `json:"user_id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url,omitempty"`
	Amount   float64 `json:"amount"`
}

// OweDetails breaks the dashboard totals down per counterparty, each list
// sorted descending by amount.
type OweDetails struct {
	YouOwe       []CounterpartyBalance `json:"you_owe"`
	YouAreOwedBy []CounterpartyBalance `json:"you_are_owed_by"`
}

// UserBalances is the dashboard aggregate over the caller's one-to-one
// history. TotalBalance = YouAreOwed - YouOwe.
type UserBalances struct {
	YouOwe       float64    `json:"you_owe"`
	YouAreOwed   float64    `json:"you_are_owed"`
	TotalBalance float64    `json:"total_balance"`
	OweDetails   OweDetails `json:"owe_details"`
}

// Debt is one outstanding obligation a user holds toward a counterparty.
// Since is the date of the oldest contributing expense.
type Debt struct {
	UserID string    `json:"user_id"`
	Name   string    `json:"name"`
	Amount float64   `json:"amount"`
	Since  time.Time `json:"since"`
}

// DebtorSummary lists one user's outstanding one-to-one debts; consumed by
// the payment-reminder scheduler.
type DebtorSummary struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Debts  []Debt `json:"debts"`
}

// MonthlyTotal is one month's share of the caller's spending.
type MonthlyTotal struct {
	Month time.Time `json:"month"`
	Total float64   `json:"total"`
}

// BalanceService is the read-side engine: it replays expense and settlement
// history to derive current positions. Nothing here writes.
type BalanceService interface {
	GetUserBalances(ctx context.Context, callerID string) (*UserBalances, error)
	GetUsersWithOutstandingDebts(ctx context.Context) ([]DebtorSummary, error)
	TotalSpent(ctx context.Context, callerID string, year int) (float64, error)
	MonthlySpending(ctx context.Context, callerID string, year int) ([]MonthlyTotal, error)
}
