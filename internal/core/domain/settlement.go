package domain

import "time"

// Settlement records a real transfer between exactly two users that reduces
// their outstanding balance. GroupID is empty for direct one-to-one
// settlements. Append-only: no balance field anywhere is mutated as a result
// of recording one.
type Settlement struct {
	ID                string    `json:"id" bson:"_id,omitempty"`
	Amount            float64   `json:"amount" bson:"amount"`
	Note              string    `json:"note,omitempty" bson:"note,omitempty"`
	Date              time.Time `json:"date" bson:"date"`
	PaidByUserID      string    `json:"paid_by_user_id" bson:"paid_by_user_id"`
	ReceivedByUserID  string    `json:"received_by_user_id" bson:"received_by_user_id"`
	GroupID           string    `json:"group_id,omitempty" bson:"group_id,omitempty"`
	RelatedExpenseIDs []string  `json:"related_expense_ids,omitempty" bson:"related_expense_ids,omitempty"`
	CreatedBy         string    `json:"created_by" bson:"created_by"`
}

// Between reports whether the settlement is between exactly users a and b.
func (s *Settlement) Between(a, b string) bool {
	return (s.PaidByUserID == a && s.ReceivedByUserID == b) ||
		(s.PaidByUserID == b && s.ReceivedByUserID == a)
}
