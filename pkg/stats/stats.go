// Package stats aggregates trip events for the statistics screen and the
// trip header.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/timeutil"
)

// Unit says how chart values are rendered.
type Unit string

const (
	UnitMoney    Unit = "money"
	UnitCount    Unit = "count"
	UnitDuration Unit = "duration"
)

// Entry is one bar of a chart.
type Entry struct {
	Type  event.Type `json:"type" yaml:"type"`
	Label string     `json:"label" yaml:"label"`
	Value int64      `json:"value" yaml:"value"`
}

// Chart is a titled set of bars, largest first.
type Chart struct {
	Name    string  `json:"name" yaml:"name"`
	Unit    Unit    `json:"unit" yaml:"unit"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Format renders v in the chart unit.
func (c Chart) Format(v int64) string {
	switch c.Unit {
	case UnitMoney:
		return fmt.Sprintf("€ %d", v)
	case UnitCount:
		return fmt.Sprintf("%dx", v)
	case UnitDuration:
		return timeutil.FormatDuration(time.Duration(v))
	}
	return fmt.Sprint(v)
}

// Max is the largest value, used to scale bars.
func (c Chart) Max() int64 {
	if len(c.Entries) == 0 {
		return 0
	}
	return c.Entries[0].Value
}

// Report holds the three statistics charts.
type Report struct {
	Money     Chart `json:"money" yaml:"money"`
	Transport Chart `json:"transport" yaml:"transport"`
	TimeSpent Chart `json:"timeSpent" yaml:"timeSpent"`
}

// Charts lists the charts in display order.
func (r Report) Charts() []Chart {
	return []Chart{r.Money, r.Transport, r.TimeSpent}
}

// Compute builds the report. Money sums base prices per type, transport
// counts every transfer-type event and time spent sums durations per type.
func Compute(events []*event.Event) Report {
	var transfers []*event.Event
	for _, e := range events {
		if e.Type.IsTransfer() {
			transfers = append(transfers, e)
		}
	}
	return Report{
		Money: chart("MONEY", UnitMoney, events, func(e *event.Event) int64 {
			return int64(e.BasePrice)
		}),
		Transport: chart("TRANSPORT", UnitCount, transfers, func(*event.Event) int64 {
			return 1
		}),
		TimeSpent: chart("TIME SPENT", UnitDuration, events, func(e *event.Event) int64 {
			return int64(e.Duration())
		}),
	}
}

func chart(name string, unit Unit, events []*event.Event, value func(*event.Event) int64) Chart {
	sums := map[event.Type]int64{}
	var order []event.Type
	for _, e := range events {
		if _, seen := sums[e.Type]; !seen {
			order = append(order, e.Type)
		}
		sums[e.Type] += value(e)
	}

	entries := make([]Entry, 0, len(order))
	for _, t := range order {
		entries = append(entries, Entry{Type: t, Label: Label(t), Value: sums[t]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return Chart{Name: name, Unit: unit, Entries: entries}
}

// Label is the bar label of a type, e.g. "🚕 TAXI".
func Label(t event.Type) string {
	return t.Emoji() + " " + strings.ToUpper(string(t))
}
