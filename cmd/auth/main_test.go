package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/infrastructure/config"
)

var testDB = config.DatabaseConfig{ConnectAttempts: 5, ConnectDelay: time.Millisecond}

func TestPrepare_SeedsOnceAfterStorageIsReady(t *testing.T) {
	readyCalls, seedCalls := 0, 0
	ready := func(context.Context) error {
		readyCalls++
		if readyCalls < 3 {
			return errors.New("connection refused")
		}
		return nil
	}
	seed := func(context.Context) error {
		seedCalls++
		return nil
	}

	require.NoError(t, prepare(context.Background(), testDB, zerolog.Nop(), ready, seed))
	require.Equal(t, 3, readyCalls)
	require.Equal(t, 1, seedCalls)
}

func TestPrepare_SeedFailureIsNotRetried(t *testing.T) {
	readyCalls, seedCalls := 0, 0
	ready := func(context.Context) error {
		readyCalls++
		return nil
	}
	seed := func(context.Context) error {
		seedCalls++
		return domain.ErrPasswordTooLong
	}

	err := prepare(context.Background(), testDB, zerolog.Nop(), ready, seed)
	require.ErrorIs(t, err, domain.ErrPasswordTooLong)
	require.NotContains(t, err.Error(), "storage unavailable")
	require.Equal(t, 1, readyCalls)
	require.Equal(t, 1, seedCalls)
}

func TestPrepare_StorageNeverReady(t *testing.T) {
	seedCalls := 0
	ready := func(context.Context) error { return errors.New("connection refused") }
	seed := func(context.Context) error {
		seedCalls++
		return nil
	}

	err := prepare(context.Background(), testDB, zerolog.Nop(), ready, seed)
	require.Error(t, err)
	require.Contains(t, err.Error(), "storage unavailable")
	require.Zero(t, seedCalls)
}
