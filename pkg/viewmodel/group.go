package viewmodel

import (
	"time"

	"tableflip.dev/trip/pkg/event"
)

const dayKeyFormat = "2006-01-02"

// DayGroup is one day of the trip. Flat layouts use a single group with a
// zero Date and Counter.
type DayGroup struct {
	Date    time.Time
	Counter int
	Events  []*event.Event
}

// Label is the date-only key of the group, empty for flat layouts.
func (g DayGroup) Label() string {
	if g.Date.IsZero() {
		return ""
	}
	return g.Date.Format(dayKeyFormat)
}

// Layout is what the board renders.
type Layout struct {
	Grouped bool
	Days    []DayGroup
}

// Events flattens the layout in display order.
func (l Layout) Events() []*event.Event {
	var out []*event.Event
	for _, d := range l.Days {
		out = append(out, d.Events...)
	}
	return out
}

// GroupByDay partitions events by the calendar date of their start in loc.
// Days are ordered by their first event, events within a day by start.
func GroupByDay(events []*event.Event, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.Local
	}
	sorted := Sort(events, SortEvent)

	var days []DayGroup
	index := make(map[string]int)
	for _, e := range sorted {
		start := e.Start.In(loc)
		key := start.Format(dayKeyFormat)
		idx, ok := index[key]
		if !ok {
			idx = len(days)
			index[key] = idx
			days = append(days, DayGroup{
				Date:    time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc),
				Counter: idx + 1,
			})
		}
		days[idx].Events = append(days[idx].Events, e)
	}
	return days
}

// Arrange builds the layout for sort mode t.
func Arrange(events []*event.Event, t SortType, loc *time.Location) Layout {
	if t == "" || t == SortEvent {
		return Layout{Grouped: true, Days: GroupByDay(events, loc)}
	}
	return Layout{Days: []DayGroup{{Events: Sort(events, t)}}}
}
