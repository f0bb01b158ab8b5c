// Package export writes the trip as an iCalendar feed.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
)

const productID = "-//tableflip.dev//trip//EN"

// Export renders the events passing Filter as VEVENTs.
type Export struct {
	Service *app.Service
	Filter  model.FilterType
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	events, err := n.Service.Events(ctx, n.Filter)
	if err != nil {
		return err
	}
	r, err := n.Service.Report(ctx)
	if err != nil {
		return err
	}
	cal := Calendar(r.Info.Title, events, n.Service.Clock())
	_, err = io.WriteString(n.Out, cal.Serialize())
	return err
}

// Calendar builds the VCALENDAR for events; name becomes the calendar name.
func Calendar(name string, events []*event.Event, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	if name != "" {
		cal.SetName(name)
	}
	for _, e := range events {
		ve := cal.AddEvent(uid(e))
		ve.SetDtStampTime(stamp.UTC())
		ve.SetStartAt(e.Start.UTC())
		ve.SetEndAt(e.End.UTC())
		ve.SetSummary(fmt.Sprintf("%s %s %s", e.Type.Emoji(), e.Type.Label(), e.Destination.Name))
		ve.SetLocation(e.Destination.Name)
		ve.SetDescription(description(e))
		ve.AddProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(e.Type)))
	}
	return cal
}

func uid(e *event.Event) string {
	return e.ID + "@trip.tableflip.dev"
}

func description(e *event.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Price: € %d", e.TotalPrice())
	for _, o := range e.CheckedOffers {
		fmt.Fprintf(&b, "\n+ %s € %d", o.Title, o.Price)
	}
	if e.IsFavourite {
		b.WriteString("\n★ favourite")
	}
	if e.Destination.Description != "" {
		b.WriteString("\n\n" + e.Destination.Description)
	}
	return b.String()
}
