package ports

import "context"

// CreateSettlementInput carries all data needed to record a payment between
// two users. The timestamp is always server-assigned.
type CreateSettlementInput struct {
	Amount            float64
	Note              string
	PaidByUserID      string
	ReceivedByUserID  string
	GroupID           string
	RelatedExpenseIDs []string
}

// SettlementService defines the settlement ledger write operation.
type SettlementService interface {
	Create(ctx context.Context, callerID string, input CreateSettlementInput) (string, error)
}
