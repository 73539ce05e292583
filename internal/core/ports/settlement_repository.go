package ports

import (
	"context"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// SettlementRepository defines persistence operations for settlement records.
type SettlementRepository interface {
	// Insert persists a new settlement and returns the assigned id.
	Insert(ctx context.Context, s *domain.Settlement) (string, error)
	// ListPersonalBetween returns one-to-one settlements between exactly the
	// two given users, either direction.
	ListPersonalBetween(ctx context.Context, userA, userB string) ([]*domain.Settlement, error)
	// ListPersonalInvolving returns one-to-one settlements where userID is
	// payer or receiver.
	ListPersonalInvolving(ctx context.Context, userID string) ([]*domain.Settlement, error)
	// ListPersonal returns every one-to-one settlement (reminder scan).
	ListPersonal(ctx context.Context) ([]*domain.Settlement, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.Settlement, error)
}
