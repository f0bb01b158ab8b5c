package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/trip/pkg/event"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints every month the trip touches, with travel days in bold.
func (pp *PrettyPrint) Calendar(events ...*event.Event) {
	if len(events) == 0 {
		return
	}
	loc := pp.loc()
	first, last := events[0].Start.In(loc), events[0].End.In(loc)
	for _, e := range events {
		if s := e.Start.In(loc); s.Before(first) {
			first = s
		}
		if end := e.End.In(loc); end.After(last) {
			last = end
		}
	}

	month := time.Date(first.Year(), first.Month(), 1, 1, 0, 0, 0, loc)
	stop := time.Date(last.Year(), last.Month(), 1, 1, 0, 0, 0, loc)
	for !month.After(stop) {
		pp.PrintMonthCount(month, countDays(month, events))
		month = NextMonth(month)
	}
}

// countDays counts, per day of then's month, the events in progress.
func countDays(then time.Time, events []*event.Event) []int {
	loc := then.Location()
	count := make([]int, DaysIn(then))
	for i := range count {
		day := time.Date(then.Year(), then.Month(), i+1, 0, 0, 0, 0, loc)
		next := day.AddDate(0, 0, 1)
		for _, e := range events {
			if e.Start.Before(next) && !e.End.Before(day) {
				count[i]++
			}
		}
	}
	return count
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := StartDay(then)

	tf := pp.color(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out, "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	_, _ = fmt.Fprint(pp.out, strings.Repeat("   ", int(d)))

	l1 := pp.color(color.Faint, color.FgWhite)
	l2 := pp.color(color.Bold, color.FgHiWhite)

	for i := 0; i < DaysIn(then); i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out, "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out, "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out, "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out, "\n\n")
}

func NextMonth(then time.Time) time.Time {
	return time.Date(then.Year(), then.Month()+1, 1, 1, 0, 0, 0, then.Location())
}

func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func StartDay(then time.Time) time.Weekday {
	return time.Date(then.Year(), then.Month(), 1, 1, 0, 0, 0, time.UTC).Weekday()
}
