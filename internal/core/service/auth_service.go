package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/core/ports"
	"github.com/explora/travel-booking/internal/token"
)

// DefaultAdminPassword is the seed password shipped for local development.
const DefaultAdminPassword = "admin123"

// AdminSeed describes the administrator account created at startup.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// AuthService implements registration, login and token verification.
type AuthService struct {
	repo    ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  *token.Issuer
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

// NewAuthService wires the service. limiter may be nil to disable throttling.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, issuer *token.Issuer, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, issuer: issuer, limiter: limiter, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrMissingCredentials
	}
	if len(in.Password) > domain.MaxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	_, err := s.repo.FindByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Authenticate checks the credentials and returns a signed access token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Msg("login limiter unavailable")
		} else if !allowed {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("stored password digest unreadable")
	}
	if !ok {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("reset login attempts")
		}
	}

	return s.issuer.Issue(user)
}

func (s *AuthService) Verify(_ context.Context, raw string) (*token.Claims, error) {
	return token.Decode(raw, s.issuer.Secret())
}

// EnsureAdmin creates the administrator account when it does not exist yet.
func (s *AuthService) EnsureAdmin(ctx context.Context, seed AdminSeed) error {
	_, err := s.repo.FindByUsername(ctx, seed.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup admin: %w", err)
	}
	if len(seed.Password) > domain.MaxPasswordBytes {
		return fmt.Errorf("admin seed: %w", domain.ErrPasswordTooLong)
	}

	hash, err := s.hasher.Hash(seed.Password)
	if err != nil {
		return err
	}

	admin, err := s.repo.Create(ctx, &domain.User{
		Username:     seed.Username,
		Email:        seed.Email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrUserExists) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	evt := s.log.Info()
	if seed.Password == DefaultAdminPassword {
		evt = s.log.Warn().Bool("default_password", true)
	}
	evt.Int64("user_id", admin.ID).Str("username", admin.Username).Msg("admin account seeded")
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Fail(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("record failed login")
	}
}
