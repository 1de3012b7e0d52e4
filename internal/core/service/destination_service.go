package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/explora/travel-booking/internal/core/domain"
	"github.com/explora/travel-booking/internal/core/ports"
)

// DestinationService manages the destination catalogue.
type DestinationService struct {
	repo ports.DestinationRepository
	log  zerolog.Logger
}

func NewDestinationService(repo ports.DestinationRepository, log zerolog.Logger) *DestinationService {
	return &DestinationService{repo: repo, log: log}
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.repo.List(ctx)
}

func (s *DestinationService) Create(ctx context.Context, actor string, d *domain.Destination) (*domain.Destination, error) {
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("destination_id", created.ID).Str("by", actor).Msg("destination created")
	return created, nil
}

func (s *DestinationService) Update(ctx context.Context, actor string, id int64, patch domain.DestinationPatch) (*domain.Destination, error) {
	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("destination_id", id).Str("by", actor).Msg("destination updated")
	return updated, nil
}

func (s *DestinationService) Delete(ctx context.Context, actor string, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("destination_id", id).Str("by", actor).Msg("destination deleted")
	return nil
}
