package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/explora/travel-booking/internal/core/domain"
)

type stubDestinationRepo struct {
	rows   map[int64]domain.Destination
	nextID int64
}

func newStubDestinationRepo(seed ...domain.Destination) *stubDestinationRepo {
	r := &stubDestinationRepo{rows: make(map[int64]domain.Destination)}
	for _, d := range seed {
		r.rows[d.ID] = d
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *stubDestinationRepo) List(_ context.Context) ([]domain.Destination, error) {
	out := make([]domain.Destination, 0, len(r.rows))
	for _, d := range r.rows {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubDestinationRepo) Create(_ context.Context, d *domain.Destination) (*domain.Destination, error) {
	r.nextID++
	stored := *d
	stored.ID = r.nextID
	r.rows[stored.ID] = stored
	return &stored, nil
}

func (r *stubDestinationRepo) FindByID(_ context.Context, id int64) (*domain.Destination, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrDestinationNotFound
	}
	return &d, nil
}

func (r *stubDestinationRepo) Update(_ context.Context, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	d, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrDestinationNotFound
	}
	applyPatch(patch, &d)
	r.rows[id] = d
	return &d, nil
}

func (r *stubDestinationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.rows[id]; !ok {
		return domain.ErrDestinationNotFound
	}
	delete(r.rows, id)
	return nil
}

type stubReservationRepo struct {
	rows []domain.Reservation
}

func (r *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	stored := *res
	stored.ID = int64(len(r.rows) + 1)
	stored.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, stored)
	return &stored, nil
}

func (r *stubReservationRepo) ListByUser(_ context.Context, userID int64) ([]domain.Reservation, error) {
	var out []domain.Reservation
	for _, res := range r.rows {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	return out, nil
}

type stubIdempotencyStore struct {
	saved map[string]domain.Reservation
}

func idemKey(userID int64, key string) string {
	return fmt.Sprintf("%d|%s", userID, key)
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, userID int64, key string) (*domain.Reservation, bool, error) {
	r, ok := s.saved[idemKey(userID, key)]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (s *stubIdempotencyStore) Save(_ context.Context, userID int64, key string, r *domain.Reservation) error {
	if s.saved == nil {
		s.saved = make(map[string]domain.Reservation)
	}
	s.saved[idemKey(userID, key)] = *r
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

// applyPatch mirrors the repositories: only non-nil fields change.
func applyPatch(p domain.DestinationPatch, d *domain.Destination) {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Description != nil {
		d.Description = p.Description
	}
	if p.Region != nil {
		d.Region = p.Region
	}
	if p.Price != nil {
		d.Price = p.Price
	}
}
