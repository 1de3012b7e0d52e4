package ports

import (
	"context"

	"github.com/explora/travel-booking/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches exactly.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create stores user and returns it with its assigned ID.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) (bool, error)
}

// LoginLimiter throttles repeated failed logins per username.
type LoginLimiter interface {
	Allow(ctx context.Context, username string) (bool, error)
	Fail(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
