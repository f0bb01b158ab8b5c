// Package calendar renders month grids with the trip days highlighted.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/trip/pkg/event"
)

// Day describes a single day rendered in the calendar.
type Day struct {
	Day        int
	HasEvent   bool
	IsToday    bool
	IsSelected bool
}

// Options controls calendar styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	TitleStyle    lipgloss.Style
	EmptyStyle    lipgloss.Style
	EventStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowHeader    bool
}

// Render produces a multi-line calendar string for the given month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := DaysIn(month)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowHeader {
		lines = append(lines,
			opts.TitleStyle.Render(fmt.Sprintf("%-20s", first.Format("January 2006"))),
			opts.HeaderStyle.Render("Su Mo Tu We Th Fr Sa"))
	}

	startOffset := int(first.Weekday())
	totalCells := startOffset + daysInMonth
	rows := (totalCells + 6) / 7

	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			cellIdx := row*7 + col
			day := cellIdx - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.EmptyStyle.Render("  "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)

	style := opts.EmptyStyle
	if info.HasEvent {
		style = opts.EventStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// Months lists the first day of every month touched by events, in order.
func Months(events []*event.Event, loc *time.Location) []time.Time {
	if len(events) == 0 {
		return nil
	}
	from, to := events[0].Start.In(loc), events[0].End.In(loc)
	for _, e := range events[1:] {
		if s := e.Start.In(loc); s.Before(from) {
			from = s
		}
		if end := e.End.In(loc); end.After(to) {
			to = end
		}
	}
	var months []time.Time
	m := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, loc)
	for !m.After(to) {
		months = append(months, m)
		m = m.AddDate(0, 1, 0)
	}
	return months
}

// Trip renders every month the events span side by side. Days covered by an
// event are highlighted; selected marks the day of the selected event.
func Trip(events []*event.Event, selected *event.Event, now time.Time, loc *time.Location, opts Options) string {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	var grids []string
	for _, month := range Months(events, loc) {
		days := make(map[int]*Day)
		mark := func(t time.Time) *Day {
			if t.Year() != month.Year() || t.Month() != month.Month() {
				return nil
			}
			d, ok := days[t.Day()]
			if !ok {
				d = &Day{Day: t.Day()}
				days[t.Day()] = d
			}
			return d
		}
		for _, e := range events {
			start, end := e.Start.In(loc), e.End.In(loc)
			for t := dayOf(start); !t.After(end); t = t.AddDate(0, 0, 1) {
				if d := mark(t); d != nil {
					d.HasEvent = true
				}
			}
		}
		if d := mark(now); d != nil {
			d.IsToday = true
		}
		if selected != nil {
			if d := mark(selected.Start.In(loc)); d != nil {
				d.IsSelected = true
			}
		}
		list := make([]Day, 0, len(days))
		for _, d := range days {
			list = append(list, *d)
		}
		grids = append(grids, Render(month, list, opts))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced(grids)...)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func spaced(grids []string) []string {
	out := make([]string, 0, 2*len(grids))
	for i, g := range grids {
		if i > 0 {
			out = append(out, "   ")
		}
		out = append(out, g)
	}
	return out
}

// DefaultOptions returns the styling used for calendar rendering.
func DefaultOptions() Options {
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true)
	title := lipgloss.NewStyle().Bold(true)
	empty := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	entry := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	today := lipgloss.NewStyle().Underline(true)
	selected := lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0"))
	return Options{
		HeaderStyle:   header,
		TitleStyle:    title,
		EmptyStyle:    empty,
		EventStyle:    entry,
		TodayStyle:    today,
		SelectedStyle: selected,
		ShowHeader:    true,
	}
}
