package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/explora/travel-booking/internal/core/domain"
)

func TestDestinationService_CreateAndList(t *testing.T) {
	repo := newStubDestinationRepo()
	svc := NewDestinationService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), "admin", &domain.Destination{Name: "Cusco", Price: ptr(100.0)})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected an id to be assigned")
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Cusco" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestDestinationService_UpdatePartial(t *testing.T) {
	repo := newStubDestinationRepo(domain.Destination{ID: 1, Name: "Cusco", Region: ptr("Andes"), Price: ptr(100.0)})
	svc := NewDestinationService(repo, zerolog.Nop())

	updated, err := svc.Update(context.Background(), "admin", 1, domain.DestinationPatch{Price: ptr(150.0)})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if *updated.Price != 150 || updated.Name != "Cusco" || *updated.Region != "Andes" {
		t.Fatalf("unexpected destination after patch: %+v", updated)
	}

	same, err := svc.Update(context.Background(), "admin", 1, domain.DestinationPatch{})
	if err != nil {
		t.Fatalf("empty Update returned error: %v", err)
	}
	if *same.Price != 150 {
		t.Fatalf("empty patch must not change the row")
	}
}

func TestDestinationService_NotFound(t *testing.T) {
	svc := NewDestinationService(newStubDestinationRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "admin", 42, domain.DestinationPatch{Name: ptr("x")}); !errors.Is(err, domain.ErrDestinationNotFound) {
		t.Fatalf("Update: expected ErrDestinationNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "admin", 42, domain.DestinationPatch{}); !errors.Is(err, domain.ErrDestinationNotFound) {
		t.Fatalf("empty Update: expected ErrDestinationNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "admin", 42); !errors.Is(err, domain.ErrDestinationNotFound) {
		t.Fatalf("Delete: expected ErrDestinationNotFound, got %v", err)
	}
}

func TestDestinationService_Delete(t *testing.T) {
	repo := newStubDestinationRepo(domain.Destination{ID: 3, Name: "Lima"})
	svc := NewDestinationService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), "admin", 3); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("expected destination to be removed")
	}
}
