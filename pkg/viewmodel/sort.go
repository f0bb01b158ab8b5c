// Package viewmodel arranges trip events for display: sorted flat lists and
// day-grouped layouts. Everything here is pure.
package viewmodel

import (
	"fmt"
	"sort"
	"strings"

	"tableflip.dev/trip/pkg/event"
)

// SortType selects the ordering of the board.
type SortType string

const (
	// SortEvent is the default: chronological, grouped by day.
	SortEvent SortType = "event"
	// SortTime orders by duration, longest first.
	SortTime SortType = "time"
	// SortPrice orders by base price, most expensive first.
	SortPrice SortType = "price"
)

// SortTypes lists the sort modes in menu order.
func SortTypes() []SortType {
	return []SortType{SortEvent, SortTime, SortPrice}
}

// ParseSortType converts user input into a SortType; empty means SortEvent.
func ParseSortType(raw string) (SortType, error) {
	t := SortType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "" {
		return SortEvent, nil
	}
	for _, candidate := range SortTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return SortEvent, fmt.Errorf("viewmodel: unknown sort %q", raw)
}

// Sort returns a stably sorted copy of events. Ties keep collection order.
func Sort(events []*event.Event, t SortType) []*event.Event {
	out := append([]*event.Event(nil), events...)
	var less func(a, b *event.Event) bool
	switch t {
	case SortTime:
		less = func(a, b *event.Event) bool { return a.Duration() > b.Duration() }
	case SortPrice:
		less = func(a, b *event.Event) bool { return a.BasePrice > b.BasePrice }
	default:
		less = func(a, b *event.Event) bool { return a.Start.Before(b.Start.Time) }
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}
