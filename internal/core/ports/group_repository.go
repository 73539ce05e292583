package ports

import (
	"context"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// GroupRepository defines persistence operations for groups.
type GroupRepository interface {
	// Insert persists a new group and returns the assigned id.
	Insert(ctx context.Context, g *domain.Group) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Group, error)
	// ListByMember returns every group userID belongs to.
	ListByMember(ctx context.Context, userID string) ([]*domain.Group, error)
}
