package domain

import "time"

// SplitType determines how an expense amount is divided among participants.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitPercentage SplitType = "percentage"
	SplitExact      SplitType = "exact"
)

// Valid reports whether s is one of the known split types.
func (s SplitType) Valid() bool {
	switch s {
	case SplitEqual, SplitPercentage, SplitExact:
		return true
	}
	return false
}

// Split is one participant's share of an expense. Paid marks shares already
// reconciled out-of-band (the payer's own split, when present, carries
// Paid=true); such shares never count toward outstanding balances.
type Split struct {
	UserID string  `json:"user_id" bson:"user_id"`
	Amount float64 `json:"amount" bson:"amount"`
	Paid   bool    `json:"paid" bson:"paid"`
}

// Expense is an append-only ledger record: who paid, and who owes how much.
// GroupID is empty for one-to-one expenses.
type Expense struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Description  string    `json:"description" bson:"description"`
	Amount       float64   `json:"amount" bson:"amount"`
	Category     string    `json:"category,omitempty" bson:"category,omitempty"`
	Date         time.Time `json:"date" bson:"date"`
	PaidByUserID string    `json:"paid_by_user_id" bson:"paid_by_user_id"`
	SplitType    SplitType `json:"split_type" bson:"split_type"`
	Splits       []Split   `json:"splits" bson:"splits"`
	GroupID      string    `json:"group_id,omitempty" bson:"group_id,omitempty"`
	CreatedBy    string    `json:"created_by" bson:"created_by"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// SplitFor returns the split belonging to userID, or nil when absent.
func (e *Expense) SplitFor(userID string) *Split {
	for i := range e.Splits {
		if e.Splits[i].UserID == userID {
			return &e.Splits[i]
		}
	}
	return nil
}

// Involves reports whether userID is the payer or appears in the splits.
func (e *Expense) Involves(userID string) bool {
	return e.PaidByUserID == userID || e.SplitFor(userID) != nil
}
