package calendar

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/trip/pkg/event"
)

func span(from, to time.Time) *event.Event {
	return &event.Event{Type: event.Taxi, Start: event.At(from), End: event.At(to)}
}

func TestMonths(t *testing.T) {
	events := []*event.Event{
		span(time.Date(2026, time.March, 30, 9, 0, 0, 0, time.UTC), time.Date(2026, time.March, 30, 10, 0, 0, 0, time.UTC)),
		span(time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC), time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)),
	}
	months := Months(events, time.UTC)
	if len(months) != 3 {
		t.Fatalf("expected 3 months, got %v", months)
	}
	if months[0].Month() != time.March || months[2].Month() != time.May {
		t.Fatalf("unexpected months %v", months)
	}
	if Months(nil, time.UTC) != nil {
		t.Fatalf("expected no months without events")
	}
}

func TestRenderLayout(t *testing.T) {
	opts := Options{ShowHeader: true}
	out := Render(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), nil, opts)
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[0], "March 2026") {
		t.Fatalf("expected month title, got %q", lines[0])
	}
	if lines[1] != "Su Mo Tu We Th Fr Sa" {
		t.Fatalf("expected weekday header, got %q", lines[1])
	}
	// March 1st 2026 is a Sunday.
	if !strings.HasPrefix(lines[2], " 1  2  3") {
		t.Fatalf("unexpected first week %q", lines[2])
	}
	if len(lines) != 2+5 {
		t.Fatalf("expected 5 week rows, got %d", len(lines)-2)
	}
}

func TestTripRendersEveryMonth(t *testing.T) {
	events := []*event.Event{
		span(time.Date(2026, time.March, 30, 9, 0, 0, 0, time.UTC), time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)),
	}
	out := Trip(events, events[0], time.Date(2026, time.March, 17, 0, 0, 0, 0, time.UTC), time.UTC, Options{ShowHeader: true})
	if !strings.Contains(out, "March 2026") || !strings.Contains(out, "April 2026") {
		t.Fatalf("expected both months:\n%s", out)
	}
}

func TestDaysIn(t *testing.T) {
	if DaysIn(time.Date(2028, time.February, 10, 0, 0, 0, 0, time.UTC)) != 29 {
		t.Fatalf("expected leap february")
	}
}
