package stats

import (
	"sort"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/event"
)

const dash = " — "

// Info is the trip header: route, dates and total cost.
type Info struct {
	Title string `json:"title" yaml:"title"`
	Dates string `json:"dates" yaml:"dates"`
	Cost  int    `json:"cost" yaml:"cost"`
}

// TripInfo summarises events in loc. No events give an empty Info.
func TripInfo(events []*event.Event, loc *time.Location) Info {
	if len(events) == 0 {
		return Info{}
	}
	if loc == nil {
		loc = time.Local
	}
	ordered := append([]*event.Event(nil), events...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start.Time)
	})

	cost := 0
	for _, e := range ordered {
		cost += e.TotalPrice()
	}
	return Info{
		Title: title(ordered),
		Dates: dates(ordered, loc),
		Cost:  cost,
	}
}

func title(ordered []*event.Event) string {
	first := ordered[0].Destination.Name
	last := ordered[len(ordered)-1].Destination.Name

	var points []string
	seen := map[string]bool{}
	for _, e := range ordered {
		if name := e.Destination.Name; !seen[name] {
			seen[name] = true
			points = append(points, name)
		}
	}

	switch {
	case len(points) == 1:
		return first
	case len(points) == 2 && first != last:
		return first + dash + last
	case len(points) == 2:
		return strings.Join([]string{first, points[1], last}, dash)
	case len(points) == 3 && first != last:
		for _, p := range points {
			if p != first && p != last {
				return strings.Join([]string{first, p, last}, dash)
			}
		}
	}
	return strings.Join([]string{first, "…", last}, dash)
}

// dates renders "Mar 18", "Mar 18 — 20" or "Mar 30 — Apr 02".
func dates(ordered []*event.Event, loc *time.Location) string {
	start := ordered[0].Start.In(loc)
	end := ordered[len(ordered)-1].End.In(loc)

	from := start.Format("Jan 02")
	to := end.Format("Jan 02")
	switch {
	case from == to:
		return from
	case start.Month() == end.Month():
		return from + dash + end.Format("02")
	}
	return from + dash + to
}
