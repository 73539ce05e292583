package service

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// BalanceService derives balances by replaying the expense and settlement
// ledgers on every call. Nothing is cached or stored; the ledgers are the
// only source of truth.
type BalanceService struct {
	expenses    ports.ExpenseRepository
	settlements ports.SettlementRepository
	users       ports.UserRepository
	logger      zerolog.Logger
}

func NewBalanceService(expenses ports.ExpenseRepository, settlements ports.SettlementRepository, users ports.UserRepository, logger zerolog.Logger) *BalanceService {
	return &BalanceService{expenses: expenses, settlements: settlements, users: users, logger: logger}
}

func (s *BalanceService) GetUserBalances(ctx context.Context, callerID string) (*ports.UserBalances, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	expenses, err := s.expenses.ListPersonalInvolving(ctx, callerID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.settlements.ListPersonalInvolving(ctx, callerID)
	if err != nil {
		return nil, err
	}

	// Signed net per counterparty: positive means they owe the caller.
	net := make(map[string]float64)

	for _, e := range expenses {
		if e.PaidByUserID == callerID {
			for _, sp := range e.Splits {
				if sp.UserID == callerID || sp.Paid {
					continue
				}
				net[sp.UserID] += sp.Amount
			}
			continue
		}
		if sp := e.SplitFor(callerID); sp != nil && !sp.Paid {
			net[e.PaidByUserID] -= sp.Amount
		}
	}

	for _, st := range settlements {
		if st.PaidByUserID == callerID {
			net[st.ReceivedByUserID] += st.Amount
		} else if st.ReceivedByUserID == callerID {
			net[st.PaidByUserID] -= st.Amount
		}
	}

	names, err := s.lookupSummaries(ctx, keys(net))
	if err != nil {
		return nil, err
	}

	result := &ports.UserBalances{}
	for userID, amount := range net {
		// A counterparty that nets to exactly zero is settled up and is
		// omitted from the dashboard entirely.
		if amount == 0 {
			continue
		}
		entry := ports.CounterpartyBalance{UserID: userID}
		if u, ok := names[userID]; ok {
			entry.Name = u.Name
			entry.ImageURL = u.ImageURL
		}
		if amount > 0 {
			entry.Amount = amount
			result.YouAreOwed += amount
			result.OweDetails.YouAreOwedBy = append(result.OweDetails.YouAreOwedBy, entry)
		} else {
			entry.Amount = -amount
			result.YouOwe += -amount
			result.OweDetails.YouOwe = append(result.OweDetails.YouOwe, entry)
		}
	}
	result.TotalBalance = result.YouAreOwed - result.YouOwe

	sortByAmountDesc(result.OweDetails.YouOwe)
	sortByAmountDesc(result.OweDetails.YouAreOwedBy)

	return result, nil
}

// GetUsersWithOutstandingDebts scans the whole one-to-one ledger and returns
// every user who still owes money, with per-creditor amounts and the date of
// the oldest contributing expense. Consumed by the payment reminder scheduler.
func (s *BalanceService) GetUsersWithOutstandingDebts(ctx context.Context) ([]ports.DebtorSummary, error) {
	expenses, err := s.expenses.ListPersonal(ctx)
	if err != nil {
		return nil, err
	}
	settlements, err := s.settlements.ListPersonal(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	type owed struct {
		amount float64
		since  time.Time
	}
	// user -> counterparty -> signed position. Positive means the user owes
	// the counterparty; negative means the counterparty owes the user.
	debts := make(map[string]map[string]*owed)
	record := func(user, counterparty string) *owed {
		m, ok := debts[user]
		if !ok {
			m = make(map[string]*owed)
			debts[user] = m
		}
		o, ok := m[counterparty]
		if !ok {
			o = &owed{}
			m[counterparty] = o
		}
		return o
	}
	lookup := func(user, counterparty string) *owed {
		return debts[user][counterparty]
	}

	for _, e := range expenses {
		for _, sp := range e.Splits {
			if sp.UserID == e.PaidByUserID || sp.Paid {
				continue
			}
			o := record(sp.UserID, e.PaidByUserID)
			o.amount += sp.Amount
			if o.since.IsZero() || e.Date.Before(o.since) {
				o.since = e.Date
			}
			c := record(e.PaidByUserID, sp.UserID)
			c.amount -= sp.Amount
			if c.since.IsZero() {
				c.since = e.Date
			}
		}
	}

	// A settlement moves both parties' positions, but only where expense
	// history already opened an entry: a bare payment creates no debt.
	for _, st := range settlements {
		if o := lookup(st.PaidByUserID, st.ReceivedByUserID); o != nil {
			o.amount -= st.Amount
		}
		if o := lookup(st.ReceivedByUserID, st.PaidByUserID); o != nil {
			o.amount += st.Amount
		}
	}

	var result []ports.DebtorSummary
	for debtorID, creditors := range debts {
		var list []ports.Debt
		for creditorID, o := range creditors {
			if o.amount <= 0 {
				continue
			}
			d := ports.Debt{UserID: creditorID, Amount: o.amount, Since: o.since}
			if u, ok := byID[creditorID]; ok {
				d.Name = u.Name
			}
			list = append(list, d)
		}
		if len(list) == 0 {
			continue
		}
		sort.Slice(list, func(i, j int) bool { return list[i].Amount > list[j].Amount })

		summary := ports.DebtorSummary{UserID: debtorID, Debts: list}
		if u, ok := byID[debtorID]; ok {
			summary.Name = u.Name
			summary.Email = u.Email
		}
		result = append(result, summary)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

// TotalSpent sums the caller's own share across every expense in the given
// year, group expenses included. Paid status is irrelevant here; spending is
// the caller's share whether or not it has been reimbursed.
func (s *BalanceService) TotalSpent(ctx context.Context, callerID string, year int) (float64, error) {
	if callerID == "" {
		return 0, domain.ErrNotAuthenticated
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	expenses, err := s.expenses.ListInvolvingSince(ctx, callerID, start)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		if sp := e.SplitFor(callerID); sp != nil {
			total += sp.Amount
		}
	}
	return total, nil
}

// MonthlySpending buckets the caller's share by calendar month. Every month
// of the year is present, zero totals included.
func (s *BalanceService) MonthlySpending(ctx context.Context, callerID string, year int) ([]ports.MonthlyTotal, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	expenses, err := s.expenses.ListInvolvingSince(ctx, callerID, start)
	if err != nil {
		return nil, err
	}

	totals := make([]ports.MonthlyTotal, 12)
	for m := range totals {
		totals[m].Month = time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
	}
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		if sp := e.SplitFor(callerID); sp != nil {
			totals[int(e.Date.Month())-1].Total += sp.Amount
		}
	}
	return totals, nil
}

func (s *BalanceService) lookupSummaries(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*domain.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m, nil
}

func sortByAmountDesc(list []ports.CounterpartyBalance) {
	sort.Slice(list, func(i, j int) bool { return list[i].Amount > list[j].Amount })
}

func keys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
