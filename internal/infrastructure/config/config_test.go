package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/require"
)

func TestLoadAuth_Defaults(t *testing.T) {
	cfg, err := loadAuth(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s",
	}))
	require.NoError(t, err)

	require.Equal(t, "8000", cfg.Port)
	require.Equal(t, 4*time.Hour, cfg.TokenTTL)
	require.Equal(t, "bcrypt", cfg.PasswordHasher)
	require.Equal(t, 12, cfg.Database.ConnectAttempts)
	require.Equal(t, 2*time.Second, cfg.Database.ConnectDelay)
	require.Equal(t, "admin", cfg.Admin.Username)
	require.Equal(t, "admin@explora.com", cfg.Admin.Email)
	require.Equal(t, "admin123", cfg.Admin.Password)
	require.Equal(t, 5, cfg.Login.MaxAttempts)
	require.Equal(t, 15*time.Minute, cfg.Login.Window)
	require.False(t, cfg.Redis.Enabled())
}

func TestLoadAuth_RequiresSecret(t *testing.T) {
	_, err := loadAuth(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.ErrorIs(t, err, errMissingSecret)
}

func TestLoadAuth_Overrides(t *testing.T) {
	cfg, err := loadAuth(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s",
		"PORT":                "9000",
		"DATABASE_URL":        "mongodb://mongo:27017",
		"PASSWORD_HASHER":     "argon2id",
		"REDIS_ADDR":          "redis:6379",
		"DB_CONNECT_ATTEMPTS": "3",
	}))
	require.NoError(t, err)
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "mongodb://mongo:27017", cfg.Database.URL)
	require.Equal(t, "argon2id", cfg.PasswordHasher)
	require.Equal(t, 3, cfg.Database.ConnectAttempts)
	require.True(t, cfg.Redis.Enabled())
}

func TestLoadAuth_RejectsZeroAttempts(t *testing.T) {
	_, err := loadAuth(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":          "s",
		"DB_CONNECT_ATTEMPTS": "0",
	}))
	require.Error(t, err)
}

func TestLoadBooking_SecretFallback(t *testing.T) {
	cfg, err := loadBooking(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_JWT_SECRET": "shared",
	}))
	require.NoError(t, err)
	require.Equal(t, "shared", cfg.JWTSecret)
	require.Equal(t, "8001", cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	require.Equal(t, 8, cfg.SerializerWorkers)

	cfg, err = loadBooking(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "primary",
		"AUTH_JWT_SECRET": "shared",
	}))
	require.NoError(t, err)
	require.Equal(t, "primary", cfg.JWTSecret)

	_, err = loadBooking(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.ErrorIs(t, err, errMissingSecret)
}
