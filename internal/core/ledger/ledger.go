// Package ledger derives balances by replaying expense and settlement
// history. Everything here is a pure function of its inputs: no record is
// ever mutated and no derived balance is persisted.
package ledger

import (
	"sort"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// pair is a directed debtor→creditor key. Keeping the ledger as a flat map
// keyed by pair avoids a nested structure sized quadratically by member
// count; the netting pass itself is still O(N²), which is fine for the small
// groups this serves.
type pair struct {
	debtor   string
	creditor string
}

// Entry is one directed net obligation in a member's balance output.
type Entry struct {
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// MemberBalance is the per-member output of the simplifier: the member's net
// position and the directed amounts they owe / are owed after netting.
type MemberBalance struct {
	UserID       string  `json:"user_id"`
	TotalBalance float64 `json:"total_balance"`
	Owes         []Entry `json:"owes"`
	OwedBy       []Entry `json:"owed_by"`
}

// Ledger accumulates a group's debt graph. Only listed members participate;
// splits or settlements touching anyone else are ignored.
type Ledger struct {
	members []string
	known   map[string]bool
	totals  map[string]float64
	debts   map[pair]float64
}

// New returns an empty ledger over the given members.
func New(memberIDs []string) *Ledger {
	l := &Ledger{
		members: append([]string(nil), memberIDs...),
		known:   make(map[string]bool, len(memberIDs)),
		totals:  make(map[string]float64, len(memberIDs)),
		debts:   make(map[pair]float64),
	}
	for _, id := range memberIDs {
		l.known[id] = true
		l.totals[id] = 0
	}
	return l
}

// ApplyExpense credits the payer and debits each unpaid, non-self split.
// Every debit has a matching credit, so Σtotals stays zero.
func (l *Ledger) ApplyExpense(e *domain.Expense) {
	payer := e.PaidByUserID
	if !l.known[payer] {
		return
	}
	for _, s := range e.Splits {
		if s.UserID == payer || s.Paid || !l.known[s.UserID] {
			continue
		}
		l.totals[payer] += s.Amount
		l.totals[s.UserID] -= s.Amount
		l.debts[pair{debtor: s.UserID, creditor: payer}] += s.Amount
	}
}

// ApplySettlement credits the payer and debits the receiver, reducing what
// the payer owed the receiver. The directed entry may go negative; the
// netting pass resolves that residual.
func (l *Ledger) ApplySettlement(s *domain.Settlement) {
	if !l.known[s.PaidByUserID] || !l.known[s.ReceivedByUserID] {
		return
	}
	l.totals[s.PaidByUserID] += s.Amount
	l.totals[s.ReceivedByUserID] -= s.Amount
	l.debts[pair{debtor: s.PaidByUserID, creditor: s.ReceivedByUserID}] -= s.Amount
}

// Net collapses each pair's two directed entries into a single net amount.
// Every unordered pair is visited once in canonical order. This resolves
// two-party residuals only — transitive cycles across three or more members
// are deliberately left intact.
func (l *Ledger) Net() {
	for i, a := range l.members {
		for _, b := range l.members[i+1:] {
			ab := pair{debtor: a, creditor: b}
			ba := pair{debtor: b, creditor: a}
			diff := l.debts[ab] - l.debts[ba]
			switch {
			case diff > 0:
				l.debts[ab] = diff
				l.debts[ba] = 0
			case diff < 0:
				l.debts[ba] = -diff
				l.debts[ab] = 0
			default:
				l.debts[ab] = 0
				l.debts[ba] = 0
			}
		}
	}
}

// Owes returns the amount debtor currently owes creditor.
func (l *Ledger) Owes(debtor, creditor string) float64 {
	return l.debts[pair{debtor: debtor, creditor: creditor}]
}

// Total returns the member's net position (credits minus debits).
func (l *Ledger) Total(userID string) float64 {
	return l.totals[userID]
}

// Balances returns each member's net position and directed obligations, in
// membership order. Owes/OwedBy entries are sorted by counterparty id so the
// output is deterministic.
func (l *Ledger) Balances() []MemberBalance {
	out := make([]MemberBalance, 0, len(l.members))
	for _, id := range l.members {
		mb := MemberBalance{UserID: id, TotalBalance: l.totals[id]}
		for _, other := range l.members {
			if other == id {
				continue
			}
			if amt := l.debts[pair{debtor: id, creditor: other}]; amt > 0 {
				mb.Owes = append(mb.Owes, Entry{UserID: other, Amount: amt})
			}
			if amt := l.debts[pair{debtor: other, creditor: id}]; amt > 0 {
				mb.OwedBy = append(mb.OwedBy, Entry{UserID: other, Amount: amt})
			}
		}
		sort.Slice(mb.Owes, func(i, j int) bool { return mb.Owes[i].UserID < mb.Owes[j].UserID })
		sort.Slice(mb.OwedBy, func(i, j int) bool { return mb.OwedBy[i].UserID < mb.OwedBy[j].UserID })
		out = append(out, mb)
	}
	return out
}
