package ports

import (
	"context"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users for the given ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// Search matches name or email case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]*domain.User, error)
	// UpdateName patches the display name (re-authentication refresh).
	UpdateName(ctx context.Context, id, name string) error
	ListAll(ctx context.Context) ([]*domain.User, error)
}
