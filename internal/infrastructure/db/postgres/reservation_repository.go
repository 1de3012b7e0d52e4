package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/explora/travel-booking/internal/core/domain"
)

type ReservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	created := *res
	err := r.db.QueryRow(ctx, `
		INSERT INTO reservations (user_id, destination_id, people, check_in, check_out, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, res.UserID, res.DestinationID, res.People, res.CheckIn.Time, res.CheckOut.Time, res.TotalPrice,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, fmt.Errorf("insert reservation: %w", err)
	}
	return &created, nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, destination_id, people, check_in, check_out, total_price, created_at
		FROM reservations WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := []domain.Reservation{}
	for rows.Next() {
		var (
			res               domain.Reservation
			checkIn, checkOut time.Time
		)
		if err := rows.Scan(&res.ID, &res.UserID, &res.DestinationID, &res.People,
			&checkIn, &checkOut, &res.TotalPrice, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.CheckIn = domain.DateOf(checkIn)
		res.CheckOut = domain.DateOf(checkOut)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}
