package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/viewmodel"
)

var now = time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(store.DemoEvents(now)...)
	return &Service{Persistence: mem, Loc: time.UTC, Now: func() time.Time { return now }}, mem
}

func TestAddResolvesCatalogs(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, EventRequest{
		Type:        "train",
		Destination: "geneva",
		Start:       now.Add(time.Hour),
		End:         now.Add(3 * time.Hour),
		BasePrice:   50,
		Offers:      []string{"train-meal"},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" || created.Destination.Name != "Geneva" || created.Destination.Description == "" {
		t.Fatalf("expected catalog destination, got %+v", created.Destination)
	}
	if len(created.Offers) != 2 || !created.IsChecked("train-meal") || created.TotalPrice() != 65 {
		t.Fatalf("unexpected offers %+v", created)
	}
}

func TestAddRejectsUnknownOffer(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Add(context.Background(), EventRequest{
		Type:        "bus",
		Destination: "Geneva",
		Start:       now,
		End:         now.Add(time.Hour),
		Offers:      []string{"flight-meal"},
	})
	if !errors.Is(err, event.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if _, err := svc.Add(context.Background(), EventRequest{Type: "rocket"}); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestToggleFavouriteAndDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	all, _ := svc.Events(ctx, model.FilterEverything)
	target := all[1]

	updated, err := svc.ToggleFavourite(ctx, target.ID)
	if err != nil || updated.IsFavourite == target.IsFavourite {
		t.Fatalf("expected flipped favourite, got %+v (%v)", updated, err)
	}
	if err := svc.Delete(ctx, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, target.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBoardAndReport(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	layout, err := svc.Board(ctx, model.FilterEverything, viewmodel.SortEvent)
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if !layout.Grouped || len(layout.Days) != 3 || len(layout.Events()) != 6 {
		t.Fatalf("unexpected layout: grouped=%v days=%d", layout.Grouped, len(layout.Days))
	}

	past, _ := svc.Events(ctx, model.FilterPast)
	if len(past) != 0 {
		t.Fatalf("demo trip is in the future, got %d past events", len(past))
	}

	report, err := svc.Report(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.Info.Title != "Amsterdam — Geneva — Chamonix" || report.Info.Dates != "Mar 18 — 20" {
		t.Fatalf("unexpected info %+v", report.Info)
	}
	if len(report.Stats.Money.Entries) != 6 {
		t.Fatalf("expected one money bar per type, got %d", len(report.Stats.Money.Entries))
	}
}

func TestNoPersistence(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Events(context.Background(), model.FilterEverything); !errors.Is(err, ErrNoPersistence) {
		t.Fatalf("expected ErrNoPersistence, got %v", err)
	}
}
