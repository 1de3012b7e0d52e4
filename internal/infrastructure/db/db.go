// Package db selects the storage backend and waits for it at startup.
package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

type Backend string

const (
	Postgres Backend = "postgres"
	Mongo    Backend = "mongo"
)

// BackendFor picks the backend from the scheme of a DATABASE_URL value.
func BackendFor(rawURL string) (Backend, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mongodb", "mongodb+srv":
		return Mongo, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
	}
}

// WaitFor runs init until it succeeds, at most attempts times with a fixed
// delay between tries. The last error is returned when every attempt fails.
func WaitFor(ctx context.Context, attempts int, delay time.Duration, log zerolog.Logger, init func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = 1
	}
	if delay <= 0 {
		delay = time.Millisecond
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewConstant(delay))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := init(ctx); err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", attempts).Msg("storage not ready")
			return retry.RetryableError(err)
		}
		log.Info().Int("attempt", attempt).Msg("storage ready")
		return nil
	})
}
