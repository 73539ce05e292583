package ports

import (
	"context"

	"github.com/splitr-dev/splitr-api/internal/core/domain"
)

// AuthService handles registration, login, and token issuance. It is the
// identity-provider boundary: every other service takes the resolved caller
// id as an explicit parameter instead of reading ambient request state.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// UpdateProfile changes the caller's display name.
	UpdateProfile(ctx context.Context, callerID, name string) (*domain.User, error)
}
