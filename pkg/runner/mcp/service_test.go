package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/store"
)

var now = time.Date(2026, time.March, 17, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(store.DemoEvents(now)...)
	return NewService(&app.Service{
		Persistence: mem,
		Loc:         time.UTC,
		Now:         func() time.Time { return now },
	}), mem
}

func intPtr(i int) *int    { return &i }
func boolPtr(b bool) *bool { return &b }

func TestServiceListEventsGroupsByDay(t *testing.T) {
	svc, _ := newTestService(t)

	days, err := svc.ListEvents(context.Background(), "", "")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	if days[0].Date != "2026-03-18" || days[0].Counter != 1 {
		t.Fatalf("unexpected first day %+v", days[0])
	}
	if len(days[0].Events) != 3 || days[0].Events[0].Type != "flight" {
		t.Fatalf("expected flight first, got %+v", days[0].Events)
	}
}

func TestServiceListEventsFlatSort(t *testing.T) {
	svc, _ := newTestService(t)

	days, err := svc.ListEvents(context.Background(), "future", "price")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(days) != 1 || days[0].Date != "" {
		t.Fatalf("expected a single undated section, got %+v", days)
	}
	events := days[0].Events
	for i := 1; i < len(events); i++ {
		if events[i-1].BasePrice < events[i].BasePrice {
			t.Fatalf("expected price descending, got %d before %d", events[i-1].BasePrice, events[i].BasePrice)
		}
	}
}

func TestServiceListEventsRejectsUnknownFilter(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ListEvents(context.Background(), "tomorrow", ""); err == nil {
		t.Fatalf("expected unknown filter error")
	}
}

func TestServiceCreateEvent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateEvent(ctx, EventFields{
		Type:        "bus",
		Destination: "Geneva",
		Start:       "2026-03-21T09:00:00Z",
		End:         "+90m",
		BasePrice:   intPtr(12),
		Offers:      []string{"bus-seats"},
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if dto.ID == "" {
		t.Fatalf("expected generated id")
	}
	if dto.EndISO != "2026-03-21T10:30:00Z" {
		t.Fatalf("expected relative end, got %s", dto.EndISO)
	}
	if dto.Duration != "01H 30M" {
		t.Fatalf("expected 01H 30M, got %s", dto.Duration)
	}
	if dto.TotalPrice != 17 {
		t.Fatalf("expected total 17, got %d", dto.TotalPrice)
	}
	if len(dto.Offers) != 1 || !dto.Offers[0].Checked {
		t.Fatalf("expected checked bus-seats, got %+v", dto.Offers)
	}
}

func TestServiceCreateEventRequiresStart(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.CreateEvent(context.Background(), EventFields{Type: "bus", Destination: "Geneva"})
	if err == nil {
		t.Fatalf("expected missing start error")
	}
}

func TestServiceUpdateEventKeepsUnsetFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	days, err := svc.ListEvents(ctx, "", "")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	flight := days[0].Events[0]

	dto, err := svc.UpdateEvent(ctx, flight.ID, EventFields{BasePrice: intPtr(200)})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if dto.BasePrice != 200 || dto.Destination != flight.Destination || dto.StartISO != flight.StartISO {
		t.Fatalf("unexpected update result %+v", dto)
	}
	if dto.TotalPrice != 200+30 {
		t.Fatalf("expected checked luggage kept, got total %d", dto.TotalPrice)
	}
}

func TestServiceUpdateEventTypeClearsOffers(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	days, _ := svc.ListEvents(ctx, "", "")
	flight := days[0].Events[0]

	dto, err := svc.UpdateEvent(ctx, flight.ID, EventFields{Type: "train"})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	for _, o := range dto.Offers {
		if o.Checked {
			t.Fatalf("expected no checked offers after type change, got %+v", dto.Offers)
		}
	}
	if dto.Type != "train" || len(dto.Offers) != 2 {
		t.Fatalf("expected train offers, got %+v", dto)
	}
}

func TestServiceToggleFavourite(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	days, _ := svc.ListEvents(ctx, "", "")
	flight := days[0].Events[0]

	dto, err := svc.ToggleFavourite(ctx, flight.ID)
	if err != nil {
		t.Fatalf("ToggleFavourite failed: %v", err)
	}
	if !dto.IsFavourite {
		t.Fatalf("expected favourite")
	}
	dto, err = svc.UpdateEvent(ctx, flight.ID, EventFields{Favourite: boolPtr(false)})
	if err != nil {
		t.Fatalf("UpdateEvent failed: %v", err)
	}
	if dto.IsFavourite {
		t.Fatalf("expected favourite cleared")
	}
}

func TestServiceDeleteEvent(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	days, _ := svc.ListEvents(ctx, "", "")
	id := days[0].Events[0].ID

	if err := svc.DeleteEvent(ctx, id); err != nil {
		t.Fatalf("DeleteEvent failed: %v", err)
	}
	if _, err := mem.GetTripEvent(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, err := svc.EventByID(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found from EventByID, got %v", err)
	}
}

func TestServiceRejectedMutation(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	mem.Fail = errors.New("offline")

	days, _ := svc.ListEvents(ctx, "", "")
	if _, err := svc.ToggleFavourite(ctx, days[0].Events[0].ID); err == nil {
		t.Fatalf("expected rejection")
	}
}

func TestServiceReport(t *testing.T) {
	svc, _ := newTestService(t)

	r, err := svc.Report(context.Background())
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if r.Info.Title != "Amsterdam — Geneva — Chamonix" {
		t.Fatalf("unexpected title %q", r.Info.Title)
	}
	if len(r.Stats.Money.Entries) == 0 {
		t.Fatalf("expected money entries")
	}
}

func TestServiceCatalog(t *testing.T) {
	svc, _ := newTestService(t)

	catalog, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	names, _ := catalog["destinations"].([]string)
	if len(names) != 4 {
		t.Fatalf("expected 4 destinations, got %v", catalog["destinations"])
	}
}

func TestServiceWithoutApp(t *testing.T) {
	svc := NewService(nil)
	if _, err := svc.ListEvents(context.Background(), "", ""); !errors.Is(err, ErrNoService) {
		t.Fatalf("expected ErrNoService, got %v", err)
	}
}

func TestTemplateArg(t *testing.T) {
	if got := templateArg("abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := templateArg([]string{"x", "y"}); got != "x" {
		t.Fatalf("expected x, got %q", got)
	}
	if got := templateArg(nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	svc, _ := newTestService(t)
	srv := NewServer(svc, "trip", "test")
	tools := srv.ListTools()
	for _, name := range []string{"list_events", "create_event", "update_event", "toggle_favourite", "delete_event", "trip_stats"} {
		if _, ok := tools[name]; !ok {
			t.Fatalf("expected tool %s to be registered", name)
		}
	}
}
