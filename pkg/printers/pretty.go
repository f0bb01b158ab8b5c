package printers

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/stats"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/viewmodel"
)

const (
	destinationWidth = 24
	barWidth         = 40
)

var (
	spacing = strings.Repeat(" ", 38)

	barFrom, _ = colorful.Hex("#5A56E0")
	barTo, _   = colorful.Hex("#EE6FF8")
)

type PrettyPrint struct {
	ShowID bool
	Loc    *time.Location

	out   io.Writer
	plain bool
}

// New prints to w. Color is only emitted when w is a terminal.
func New(w io.Writer) *PrettyPrint {
	if w == nil {
		w = color.Output
	}
	plain := true
	if f, ok := w.(*os.File); ok {
		plain = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	if w == color.Output {
		plain = color.NoColor
	}
	return &PrettyPrint{out: w, plain: plain, Loc: time.Local}
}

func (pp *PrettyPrint) color(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if pp.plain {
		c.DisableColor()
	}
	return c
}

func (pp *PrettyPrint) loc() *time.Location {
	if pp.Loc == nil {
		return time.Local
	}
	return pp.Loc
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out)
}

func (pp *PrettyPrint) Title(title string) {
	t := pp.color(color.Bold, color.Underline)
	if pp.ShowID {
		_, _ = t.Fprint(pp.out, spacing)
	}
	_, _ = t.Fprintln(pp.out, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := pp.color(color.Bold, color.Underline)
	c := pp.color(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out, spacing)
	}
	_, _ = t.Fprint(pp.out, title)
	_, _ = c.Fprintf(pp.out, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out, " event")
	default:
		_, _ = c.Fprintln(pp.out, " events")
	}
}

// Board prints a layout: one titled table per day, or a single table for a
// flat sort.
func (pp *PrettyPrint) Board(layout viewmodel.Layout) {
	if len(layout.Days) == 0 {
		f := pp.color(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out, " none\n\n")
		return
	}
	for _, day := range layout.Days {
		if layout.Grouped {
			title := fmt.Sprintf("%d  %s", day.Counter, strings.ToUpper(day.Date.In(pp.loc()).Format("Jan 02")))
			pp.TitleWithCount(title, len(day.Events))
		}
		pp.Events(day.Events...)
	}
}

// Events prints one row per event.
func (pp *PrettyPrint) Events(events ...*event.Event) {
	tbl := uitable.New()
	tbl.Separator = "  "

	y := pp.color(color.FgHiYellow, color.Italic, color.Faint)
	star := pp.color(color.FgHiYellow)
	faint := pp.color(color.Faint)

	for _, e := range events {
		fav := " "
		if e.IsFavourite {
			fav = star.Sprint("★")
		}
		when := fmt.Sprintf("%s — %s",
			e.Start.In(pp.loc()).Format("15:04"),
			e.End.In(pp.loc()).Format("15:04"))
		row := []interface{}{
			e.Type.Emoji(),
			fmt.Sprintf("%s %s", e.Type.Label(), runewidth.Truncate(e.Destination.Name, destinationWidth, "…")),
			when,
			faint.Sprint(timeutil.FormatDuration(e.Duration())),
			fmt.Sprintf("€ %d", e.TotalPrice()),
			fav,
		}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(e.ID)}, row...)
		}
		tbl.AddRow(row...)
		for _, o := range e.CheckedOffers {
			offer := faint.Sprintf("+ %s € %d", o.Title, o.Price)
			if pp.ShowID {
				tbl.AddRow("", "", offer)
			} else {
				tbl.AddRow("", offer)
			}
		}
	}
	_, _ = fmt.Fprintln(pp.out, tbl)
	_, _ = fmt.Fprintln(pp.out)
}

// Stats prints each chart as horizontal bars shaded along a gradient.
func (pp *PrettyPrint) Stats(report stats.Report) {
	for _, chart := range report.Charts() {
		pp.Title(chart.Name)
		if len(chart.Entries) == 0 {
			_, _ = pp.color(color.Faint, color.Italic).Fprint(pp.out, " none\n\n")
			continue
		}
		tbl := uitable.New()
		tbl.Separator = "  "
		for i, entry := range chart.Entries {
			tbl.AddRow(entry.Label, pp.bar(chart, entry.Value, i, len(chart.Entries)), chart.Format(entry.Value))
		}
		_, _ = fmt.Fprintln(pp.out, tbl)
		_, _ = fmt.Fprintln(pp.out)
	}
}

func (pp *PrettyPrint) bar(chart stats.Chart, value int64, i, n int) string {
	width := 1
	if top := chart.Max(); top > 0 {
		width = int(value * barWidth / top)
	}
	if width < 1 {
		width = 1
	}
	bar := strings.Repeat("█", width)
	if pp.plain {
		return bar
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Gradient(i, n))).Render(bar)
}

// Gradient returns the hex color of step i of n along the bar palette.
func Gradient(i, n int) string {
	if n <= 1 {
		return barFrom.Hex()
	}
	return barFrom.BlendLuv(barTo, float64(i)/float64(n-1)).Clamped().Hex()
}

// Info prints the trip header.
func (pp *PrettyPrint) Info(info stats.Info) {
	if info.Title == "" {
		_, _ = pp.color(color.Faint, color.Italic).Fprintln(pp.out, "No trip yet")
		return
	}
	_, _ = pp.color(color.Bold).Fprintln(pp.out, info.Title)
	_, _ = pp.color(color.Faint).Fprintln(pp.out, info.Dates)
	_, _ = fmt.Fprintf(pp.out, "Total: € %d\n\n", info.Cost)
}
