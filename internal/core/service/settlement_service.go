package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
	"github.com/splitr-dev/splitr-api/internal/core/ports"
)

// SettlementService implements the settlement ledger write path. Settlements
// are plain records; they never mutate the expenses they pay off.
type SettlementService struct {
	settlements ports.SettlementRepository
	groups      ports.GroupRepository
	logger      zerolog.Logger
}

func NewSettlementService(settlements ports.SettlementRepository, groups ports.GroupRepository, logger zerolog.Logger) *SettlementService {
	return &SettlementService{settlements: settlements, groups: groups, logger: logger}
}

func (s *SettlementService) Create(ctx context.Context, callerID string, input ports.CreateSettlementInput) (string, error) {
	if callerID == "" {
		return "", domain.ErrNotAuthenticated
	}
	if input.Amount <= 0 {
		return "", domain.NewValidationError("amount must be positive")
	}
	if input.PaidByUserID == "" || input.ReceivedByUserID == "" {
		return "", domain.NewValidationError("payer and receiver are required")
	}
	if input.PaidByUserID == input.ReceivedByUserID {
		return "", domain.NewValidationError("payer and receiver must be different users")
	}
	if callerID != input.PaidByUserID && callerID != input.ReceivedByUserID {
		return "", domain.ErrForbidden
	}

	if input.GroupID != "" {
		group, err := s.groups.FindByID(ctx, input.GroupID)
		if err != nil {
			return "", err
		}
		// The caller is one of the two parties, so this also covers a
		// non-member caller.
		if !group.HasMember(input.PaidByUserID) || !group.HasMember(input.ReceivedByUserID) {
			return "", domain.NewValidationError("both parties must be members of the group")
		}
	}

	settlement := &domain.Settlement{
		Amount:            input.Amount,
		Note:              input.Note,
		Date:              time.Now().UTC(),
		PaidByUserID:      input.PaidByUserID,
		ReceivedByUserID:  input.ReceivedByUserID,
		GroupID:           input.GroupID,
		RelatedExpenseIDs: input.RelatedExpenseIDs,
		CreatedBy:         callerID,
	}

	id, err := s.settlements.Insert(ctx, settlement)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to insert settlement")
		return "", err
	}

	s.logger.Info().
		Str("settlement_id", id).
		Str("paid_by", input.PaidByUserID).
		Str("received_by", input.ReceivedByUserID).
		Float64("amount", input.Amount).
		Msg("settlement recorded")

	return id, nil
}
