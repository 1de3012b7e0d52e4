package ports

import (
	"context"

	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/token"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (string, error)
	Verify(ctx context.Context, raw string) (*token.Claims, error)
}
