package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/core/ports"
)

const defaultPeople = 1

// ReservationService prices and stores reservations.
type ReservationService struct {
	reservations ports.ReservationRepository
	destinations ports.DestinationRepository
	idem         ports.IdempotencyStore
	serial       ports.Serializer
	log          zerolog.Logger
}

// NewReservationService wires the service. idem may be nil to disable
// idempotent replays.
func NewReservationService(reservations ports.ReservationRepository, destinations ports.DestinationRepository, idem ports.IdempotencyStore, log zerolog.Logger) *ReservationService {
	return &ReservationService{reservations: reservations, destinations: destinations, idem: idem, log: log}
}

// SerializeBy makes concurrent creates that share a user and idempotency key
// run one at a time, so a retried request cannot book twice.
func (s *ReservationService) SerializeBy(q ports.Serializer) {
	s.serial = q
}

// Create validates the stay, prices it from the destination and persists it
// for in.UserID.
func (s *ReservationService) Create(ctx context.Context, in ports.CreateReservationInput) (*ports.ReservationResult, error) {
	useIdem := s.idem != nil && in.IdempotencyKey != ""
	if !useIdem || s.serial == nil {
		return s.create(ctx, in, useIdem)
	}

	var res *ports.ReservationResult
	key := strconv.FormatInt(in.UserID, 10) + ":" + in.IdempotencyKey
	err := s.serial.Do(ctx, key, func(ctx context.Context) error {
		var err error
		res, err = s.create(ctx, in, true)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ReservationService) create(ctx context.Context, in ports.CreateReservationInput, useIdem bool) (*ports.ReservationResult, error) {
	if useIdem {
		prev, found, err := s.idem.Lookup(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			s.log.Warn().Err(err).Msg("idempotency lookup failed")
		} else if found {
			return &ports.ReservationResult{Reservation: prev, Replayed: true}, nil
		}
	}

	days, err := domain.Stay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	people := in.People
	if people <= 0 {
		people = defaultPeople
	}

	dest, err := s.destinations.FindByID(ctx, in.DestinationID)
	if err != nil {
		return nil, err
	}
	unit, err := dest.UnitPrice()
	if err != nil {
		return nil, err
	}

	created, err := s.reservations.Create(ctx, &domain.Reservation{
		UserID:        in.UserID,
		DestinationID: dest.ID,
		People:        people,
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		TotalPrice:    domain.TotalPrice(unit, people, days),
	})
	if err != nil {
		return nil, err
	}

	if useIdem {
		if err := s.idem.Save(ctx, in.UserID, in.IdempotencyKey, created); err != nil {
			s.log.Warn().Err(err).Int64("reservation_id", created.ID).Msg("idempotency save failed")
		}
	}

	s.log.Info().
		Int64("reservation_id", created.ID).
		Int64("user_id", created.UserID).
		Int64("destination_id", created.DestinationID).
		Float64("total_price", created.TotalPrice).
		Msg("reservation created")

	return &ports.ReservationResult{Reservation: created}, nil
}

func (s *ReservationService) ListForUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, userID)
}
