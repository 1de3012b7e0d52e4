package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/explora/travel-booking/internal/core/domain"
)

// IdempotencyStore remembers the reservation created for a client key.
// Key format: idem:reservation:<user_id>:<key>
type IdempotencyStore struct {
	client Client
	ttl    time.Duration
}

func NewIdempotencyStore(client Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, userID int64, key string) (*domain.Reservation, bool, error) {
	raw, err := s.client.Get(ctx, s.key(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("idempotency lookup: %w", err)
	}

	var r domain.Reservation
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, fmt.Errorf("decode stored reservation: %w", err)
	}
	return &r, true, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, userID int64, key string, r *domain.Reservation) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode reservation: %w", err)
	}
	if err := s.client.Set(ctx, s.key(userID, key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency save: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(userID int64, key string) string {
	return fmt.Sprintf("idem:reservation:%d:%s", userID, key)
}
