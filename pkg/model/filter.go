package model

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/event"
)

// FilterType selects which events Get returns.
type FilterType string

const (
	FilterEverything FilterType = "everything"
	FilterFuture     FilterType = "future"
	FilterPast       FilterType = "past"
)

// FilterTypes lists the filters in menu order.
func FilterTypes() []FilterType {
	return []FilterType{FilterEverything, FilterFuture, FilterPast}
}

// ParseFilterType converts user input into a FilterType; empty means everything.
func ParseFilterType(raw string) (FilterType, error) {
	f := FilterType(strings.ToLower(strings.TrimSpace(raw)))
	if f == "" {
		return FilterEverything, nil
	}
	for _, candidate := range FilterTypes() {
		if candidate == f {
			return candidate, nil
		}
	}
	return FilterEverything, fmt.Errorf("model: unknown filter %q", raw)
}

// Apply returns the events matching f at instant now, keeping order.
func (f FilterType) Apply(events []*event.Event, now time.Time) []*event.Event {
	out := make([]*event.Event, 0, len(events))
	for _, e := range events {
		switch f {
		case FilterFuture:
			if !e.Start.After(now) {
				continue
			}
		case FilterPast:
			if !e.End.Before(now) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}
