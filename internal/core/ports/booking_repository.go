package ports

import (
	"context"

	"github.com/explora/travel-booking/internal/core/domain"
)

// DestinationRepository persists destinations.
type DestinationRepository interface {
	List(ctx context.Context) ([]domain.Destination, error)
	Create(ctx context.Context, d *domain.Destination) (*domain.Destination, error)
	// FindByID returns domain.ErrDestinationNotFound for unknown ids.
	FindByID(ctx context.Context, id int64) (*domain.Destination, error)
	// Update applies patch atomically and returns the stored row.
	Update(ctx context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository persists reservations.
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
}

// IdempotencyStore remembers reservations created under a client supplied key.
type IdempotencyStore interface {
	Lookup(ctx context.Context, userID int64, key string) (*domain.Reservation, bool, error)
	Save(ctx context.Context, userID int64, key string, r *domain.Reservation) error
}

// Serializer runs fn so that calls sharing a key never overlap.
type Serializer interface {
	Do(ctx context.Context, key string, fn func(context.Context) error) error
}
