package model

import (
	"testing"
	"time"

	"tableflip.dev/trip/pkg/event"
)

var now = time.Date(2026, time.June, 10, 12, 0, 0, 0, time.UTC)

func ev(id string, start time.Time, d time.Duration) *event.Event {
	return &event.Event{
		ID:          id,
		Type:        event.Bus,
		Destination: event.Destination{Name: "Geneva"},
		Start:       event.At(start),
		End:         event.At(start.Add(d)),
	}
}

func TestFilterChangeNotifiesAndFilters(t *testing.T) {
	m := NewTripEvents(WithClock(func() time.Time { return now }))
	m.SetEvents([]*event.Event{
		ev("past", now.Add(-48*time.Hour), time.Hour),
		ev("current", now.Add(-time.Hour), 2*time.Hour),
		ev("future", now.Add(24*time.Hour), time.Hour),
	})

	calls := 0
	m.AddFilterChangeHandler(func() { calls++ })

	m.SetFilter(FilterFuture)
	if calls != 1 {
		t.Fatalf("expected one filter notification, got %d", calls)
	}
	if got := m.Get(); len(got) != 1 || got[0].ID != "future" {
		t.Fatalf("unexpected future events %+v", got)
	}

	m.SetFilter(FilterPast)
	if got := m.Get(); len(got) != 1 || got[0].ID != "past" {
		t.Fatalf("unexpected past events %+v", got)
	}
	if got := m.GetAll(); len(got) != 3 {
		t.Fatalf("GetAll must ignore the filter, got %d", len(got))
	}
}

func TestUpdateAndDelete(t *testing.T) {
	m := NewTripEvents()
	m.SetEvents([]*event.Event{ev("a", now, time.Hour), ev("b", now, time.Hour)})

	repl := ev("a", now, 3*time.Hour)
	if !m.Update("a", repl) {
		t.Fatalf("expected update to succeed")
	}
	if got, _ := m.Find("a"); got != repl {
		t.Fatalf("expected stored pointer to be replaced")
	}
	if m.Update("zz", repl) {
		t.Fatalf("expected unknown id update to fail")
	}
	if !m.DeleteEvent("a") || m.DeleteEvent("a") {
		t.Fatalf("unexpected delete results")
	}
	if m.Len() != 1 || m.IsEmpty() {
		t.Fatalf("expected one event left")
	}
}

func TestSyncOnlyNotifiesOnDifference(t *testing.T) {
	m := NewTripEvents()
	initial := []*event.Event{ev("a", now, time.Hour)}
	m.SetEvents(initial)

	calls := 0
	m.AddServerSyncHandler(func() { calls++ })

	if m.Sync([]*event.Event{ev("a", now, time.Hour)}) {
		t.Fatalf("identical copy must not count as a change")
	}
	if !m.Sync([]*event.Event{ev("a", now, time.Hour), ev("b", now, time.Hour)}) {
		t.Fatalf("expected change")
	}
	if calls != 1 {
		t.Fatalf("expected one sync notification, got %d", calls)
	}
}

func TestCatalogLookup(t *testing.T) {
	d := NewDestinations([]event.Destination{{Name: "Geneva", Description: "lake"}})
	if got, ok := d.Lookup("geneva"); !ok || got.Description != "lake" {
		t.Fatalf("lookup failed: %+v", got)
	}
	if _, ok := d.Lookup("nowhere"); ok {
		t.Fatalf("expected miss")
	}
	o := NewOffers(map[event.Type][]event.Offer{event.Taxi: {{ID: "x"}}})
	if len(o.For(event.Taxi)) != 1 || len(o.For(event.Bus)) != 0 {
		t.Fatalf("unexpected offers")
	}
}
