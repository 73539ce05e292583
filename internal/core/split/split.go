// Package split implements the split calculator: given a total amount and a
// split policy it produces per-participant shares and reports whether they
// reconcile. The calculator never returns an error; invalid totals are
// surfaced through validity flags and gate submission at the caller.
package split

import (
	"math"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// Share is one participant's working share while an expense is being
// composed. Amount and Percentage are both kept current so either view can
// be rendered; Paid marks the payer's own share.
type Share struct {
	UserID     string  `json:"user_id"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
	Paid       bool    `json:"paid"`
}

// Totals carries the running sums over a set of shares.
type Totals struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Validity reports whether the shares reconcile with the expense total.
// Both checks use domain.AmountTolerance, never exact equality.
type Validity struct {
	AmountValid     bool `json:"amount_valid"`
	PercentageValid bool `json:"percentage_valid"`
}

// Compute produces the initial shares for the given split type. Every type
// initializes evenly; percentage and exact shares are then edited through
// UpdatePercentage / UpdateExact. Returns nil when amount is not positive or
// there are no participants — the caller must block submission.
func Compute(splitType domain.SplitType, amount float64, participantIDs []string, payerID string) []Share {
	if amount <= 0 || len(participantIDs) == 0 {
		return nil
	}

	n := float64(len(participantIDs))
	shares := make([]Share, len(participantIDs))

	for i, id := range participantIDs {
		s := Share{UserID: id, Paid: id == payerID}
		switch splitType {
		case domain.SplitPercentage:
			s.Percentage = 100 / n
			s.Amount = amount * s.Percentage / 100
		case domain.SplitExact:
			s.Amount = amount / n
			s.Percentage = s.Amount / amount * 100
		default: // equal
			s.Amount = amount / n
			s.Percentage = 100 / n
		}
		shares[i] = s
	}
	return shares
}

// UpdatePercentage sets one participant's percentage and recomputes only that
// participant's amount. Other shares are never silently adjusted.
func UpdatePercentage(shares []Share, amount float64, userID string, percentage float64) {
	for i := range shares {
		if shares[i].UserID == userID {
			shares[i].Percentage = percentage
			shares[i].Amount = amount * percentage / 100
			return
		}
	}
}

// UpdateExact sets one participant's amount and recomputes only that
// participant's display percentage.
func UpdateExact(shares []Share, amount float64, userID string, newAmount float64) {
	for i := range shares {
		if shares[i].UserID == userID {
			shares[i].Amount = newAmount
			if amount > 0 {
				shares[i].Percentage = newAmount / amount * 100
			} else {
				shares[i].Percentage = 0
			}
			return
		}
	}
}

// Sum returns the current totals over shares.
func Sum(shares []Share) Totals {
	var t Totals
	for _, s := range shares {
		t.Amount += s.Amount
		t.Percentage += s.Percentage
	}
	return t
}

// Validate returns the two validity flags gating submission.
func Validate(shares []Share, amount float64) Validity {
	t := Sum(shares)
	return Validity{
		AmountValid:     math.Abs(t.Amount-amount) < domain.AmountTolerance,
		PercentageValid: math.Abs(t.Percentage-100) < domain.AmountTolerance,
	}
}

// ToSplits converts working shares into the persisted expense split form.
func ToSplits(shares []Share) []domain.Split {
	splits := make([]domain.Split, len(shares))
	for i, s := range shares {
		splits[i] = domain.Split{UserID: s.UserID, Amount: s.Amount, Paid: s.Paid}
	}
	return splits
}
