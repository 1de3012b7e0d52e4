package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/explora/travel-booking/internal/core/domain"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		u     domain.User
		email *string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, hashed_password, role, created_at
		FROM users WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if email != nil {
		u.Email = *email
	}
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var email *string
	if user.Email != "" {
		email = &user.Email
	}

	created := *user
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, hashed_password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, user.Username, email, user.PasswordHash, user.Role).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}
