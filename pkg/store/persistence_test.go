package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/event"
)

func sampleEvent(start time.Time) *event.Event {
	return &event.Event{
		Type:        event.Train,
		Destination: event.Destination{Name: "Geneva"},
		Start:       event.At(start),
		End:         event.At(start.Add(2 * time.Hour)),
		BasePrice:   40,
	}
}

func TestPersistenceCRUD(t *testing.T) {
	ctx := context.Background()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	start := time.Date(2026, time.May, 1, 9, 0, 0, 0, time.UTC)
	first, err := p.CreateTripEvent(ctx, sampleEvent(start.Add(time.Hour)))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected id assigned")
	}
	second, err := p.CreateTripEvent(ctx, sampleEvent(start))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := p.ListTripEvents(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected events ordered by start, got %+v", all)
	}

	patch := first.Clone()
	patch.IsFavourite = true
	updated, err := p.UpdateTripEvent(ctx, first.ID, patch)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.IsFavourite || updated.ID != first.ID {
		t.Fatalf("unexpected update result %+v", updated)
	}
	got, err := p.GetTripEvent(ctx, first.ID)
	if err != nil || !got.IsFavourite {
		t.Fatalf("expected favourite persisted, got %+v (%v)", got, err)
	}

	if err := p.DeleteTripEvent(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.DeleteTripEvent(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := p.UpdateTripEvent(ctx, "missing", patch); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestPersistenceRejectsInvalidEvents(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bad := sampleEvent(time.Now())
	bad.End = event.At(bad.Start.Add(-time.Hour))
	if _, err := p.CreateTripEvent(context.Background(), bad); !errors.Is(err, event.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestCatalogDefaultsAndOverrides(t *testing.T) {
	ctx := context.Background()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	dests, err := p.Destinations(ctx)
	if err != nil || len(dests) != len(DefaultDestinations()) {
		t.Fatalf("expected default destinations, got %d (%v)", len(dests), err)
	}
	if err := p.SetDestinations([]event.Destination{{Name: "Oslo"}}); err != nil {
		t.Fatalf("set destinations: %v", err)
	}
	dests, err = p.Destinations(ctx)
	if err != nil || len(dests) != 1 || dests[0].Name != "Oslo" {
		t.Fatalf("expected stored catalog, got %+v (%v)", dests, err)
	}

	if err := p.SetOffers(map[event.Type][]event.Offer{event.Bus: {{ID: "b", Title: "Seat", Price: 1}}}); err != nil {
		t.Fatalf("set offers: %v", err)
	}
	offers, err := p.Offers(ctx)
	if err != nil || len(offers[event.Bus]) != 1 {
		t.Fatalf("expected stored offers, got %+v (%v)", offers, err)
	}
}
