package ports

import (
	"context"

	"github.com/explora/travel-booking/internal/core/domain"
)

type DestinationService interface {
	List(ctx context.Context) ([]domain.Destination, error)
	Create(ctx context.Context, actor string, d *domain.Destination) (*domain.Destination, error)
	Update(ctx context.Context, actor string, id int64, patch domain.DestinationPatch) (*domain.Destination, error)
	Delete(ctx context.Context, actor string, id int64) error
}

type CreateReservationInput struct {
	UserID         int64
	DestinationID  int64
	People         int
	CheckIn        domain.Date
	CheckOut       domain.Date
	IdempotencyKey string
}

type ReservationResult struct {
	Reservation *domain.Reservation
	// Replayed is true when the reservation was returned from an earlier
	// request with the same idempotency key.
	Replayed bool
}

type ReservationService interface {
	Create(ctx context.Context, in CreateReservationInput) (*ReservationResult, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
}
