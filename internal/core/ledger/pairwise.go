package ledger

import "github.com/splitr-dev/splitr-api/internal/core/domain"

// FilterShared keeps the one-to-one expenses where both users have a stake:
// either one is the payer and each appears as payer or in the splits.
func FilterShared(callerID, otherID string, expenses []*domain.Expense) []*domain.Expense {
	var shared []*domain.Expense
	for _, e := range expenses {
		if e.GroupID != "" {
			continue
		}
		if e.Involves(callerID) && e.Involves(otherID) {
			shared = append(shared, e)
		}
	}
	return shared
}

// PairwiseBalance replays the shared history between caller and other and
// returns their signed net balance: positive means other owes caller.
// Splits already marked paid were reconciled out-of-band and are skipped so
// they cannot double-count against settlements.
func PairwiseBalance(callerID, otherID string, expenses []*domain.Expense, settlements []*domain.Settlement) float64 {
	var owedToMe, iOwe float64

	for _, e := range expenses {
		switch {
		case e.PaidByUserID == callerID:
			if s := e.SplitFor(otherID); s != nil && !s.Paid {
				owedToMe += s.Amount
			}
		case e.PaidByUserID == otherID:
			if s := e.SplitFor(callerID); s != nil && !s.Paid {
				iOwe += s.Amount
			}
		}
	}

	for _, s := range settlements {
		if !s.Between(callerID, otherID) {
			continue
		}
		if s.PaidByUserID == callerID {
			iOwe -= s.Amount
		} else {
			owedToMe -= s.Amount
		}
	}

	return owedToMe - iOwe
}
