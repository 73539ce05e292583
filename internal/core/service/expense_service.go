package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ledger"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
	"github.com/splitr-dev/splitr-api/internal/core/split"
)

// ExpenseService implements the expense ledger operations. Writes are
// append-only; the only mutation is a hard delete by an authorized caller.
type ExpenseService struct {
	expenses    ports.ExpenseRepository
	settlements ports.SettlementRepository
	users       ports.UserRepository
	groups      ports.GroupRepository
	logger      zerolog.Logger
}

func NewExpenseService(expenses ports.ExpenseRepository, settlements ports.SettlementRepository, users ports.UserRepository, groups ports.GroupRepository, logger zerolog.Logger) *ExpenseService {
	return &ExpenseService{
		expenses:    expenses,
		settlements: settlements,
		users:       users,
		groups:      groups,
		logger:      logger,
	}
}

func (s *ExpenseService) Create(ctx context.Context, callerID string, input ports.CreateExpenseInput) (string, error) {
	if callerID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if input.Description == "" {
		return "", domain.NewValidationError("description is required")
	}
	if input.Amount <= 0 {
		return "", domain.NewValidationError("amount must be positive")
	}
	if !input.SplitType.Valid() {
		return "", domain.NewValidationError("unknown split type")
	}
	if input.PaidByUserID == "" {
		input.PaidByUserID = callerID
	}

	splits, err := s.resolveSplits(input)
	if err != nil {
		return "", err
	}

	if input.GroupID != "" {
		if err := s.checkGroupMembership(ctx, input.GroupID, callerID, input.PaidByUserID, splits); err != nil {
			return "", err
		}
	} else if input.PaidByUserID != callerID && !splitsContain(splits, callerID) {
		// A personal expense must have the caller on one side of it.
		return "", domain.ErrForbidden
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	expense := &domain.Expense{
		Description:  input.Description,
		Amount:       input.Amount,
		Category:     input.Category,
		Date:         date,
		PaidByUserID: input.PaidByUserID,
		SplitType:    input.SplitType,
		Splits:       splits,
		GroupID:      input.GroupID,
		CreatedBy:    callerID,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.expenses.Insert(ctx, expense)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert expense")
		return "", err
	}

	s.logger.Info().
		Str("expense_id", id).
		Str("paid_by", input.PaidByUserID).
		Str("split_type", string(input.SplitType)).
		Float64("amount", input.Amount).
		Msg("expense created")

	return id, nil
}

// resolveSplits turns the submitted splits (or participant list) into the
// persisted form, reconciling amounts against the expense total. The payer's
// own share is always stored as already paid.
func (s *ExpenseService) resolveSplits(input ports.CreateExpenseInput) ([]domain.Split, error) {
	var splits []domain.Split

	if len(input.Splits) > 0 {
		splits = make([]domain.Split, len(input.Splits))
		for i, in := range input.Splits {
			if in.UserID == "" {
				return nil, domain.NewValidationError("split participant is missing a user id")
			}
			if in.Amount < 0 {
				return nil, domain.NewValidationError("split amounts must not be negative")
			}
			splits[i] = domain.Split{UserID: in.UserID, Amount: in.Amount, Paid: in.Paid}
		}
	} else {
		shares := split.Compute(input.SplitType, input.Amount, input.ParticipantIDs, input.PaidByUserID)
		if shares == nil {
			return nil, domain.NewValidationError("at least one participant is required")
		}
		splits = split.ToSplits(shares)
	}

	var sum float64
	for i := range splits {
		if splits[i].UserID == input.PaidByUserID {
			splits[i].Paid = true
		}
		sum += splits[i].Amount
	}
	if math.Abs(sum-input.Amount) >= domain.AmountTolerance {
		return nil, domain.NewReconciliationError("split amounts do not add up to the expense total", input.Amount, sum)
	}

	return splits, nil
}

// checkGroupMembership verifies the caller, the payer and every split
// participant belong to the group.
func (s *ExpenseService) checkGroupMembership(ctx context.Context, groupID, callerID, payerID string, splits []domain.Split) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.HasMember(callerID) {
		return domain.ErrForbidden
	}
	if !group.HasMember(payerID) {
		return domain.NewValidationError("payer is not a member of the group")
	}
	for _, sp := range splits {
		if !group.HasMember(sp.UserID) {
			return domain.NewValidationError("split participant is not a member of the group")
		}
	}
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, callerID, expenseID string) error {
	if callerID == "" {
		return domain.ErrNotAuthenticated
	}

	expense, err := s.expenses.FindByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.CreatedBy != callerID && expense.PaidByUserID != callerID {
		return domain.ErrForbidden
	}

	if err := s.expenses.Delete(ctx, expenseID); err != nil {
		s.logger.Error().Err(err).Str("expense_id", expenseID).Msg("failed to delete expense")
		return err
	}

	s.logger.Info().Str("expense_id", expenseID).Str("deleted_by", callerID).Msg("expense deleted")
	return nil
}

func (s *ExpenseService) GetBetweenUsers(ctx context.Context, callerID, otherUserID string) (*ports.BetweenUsersResult, error) {
	if callerID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if otherUserID == callerID {
		return nil, domain.NewValidationError("cannot query balances with yourself")
	}

	other, err := s.users.FindByID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}

	// One payer-scoped fetch per party; a qualifying expense is paid by one
	// of them, so the union covers everything before the shared filter.
	mine, err := s.expenses.ListPersonalByPayer(ctx, callerID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.expenses.ListPersonalByPayer(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	shared := ledger.FilterShared(callerID, otherUserID, append(mine, theirs...))

	settlements, err := s.settlements.ListPersonalBetween(ctx, callerID, otherUserID)
	if err != nil {
		return nil, err
	}

	sort.Slice(shared, func(i, j int) bool { return shared[i].Date.After(shared[j].Date) })
	sort.Slice(settlements, func(i, j int) bool { return settlements[i].Date.After(settlements[j].Date) })

	return &ports.BetweenUsersResult{
		Expenses:    shared,
		Settlements: settlements,
		OtherUser: ports.UserSummary{
			ID:       other.ID,
			Name:     other.Name,
			Email:    other.Email,
			ImageURL: other.ImageURL,
		},
		Balance: ledger.PairwiseBalance(callerID, otherUserID, shared, settlements),
	}, nil
}

func splitsContain(splits []domain.Split, userID string) bool {
	for _, s := range splits {
		if s.UserID == userID {
			return true
		}
	}
	return false
}
