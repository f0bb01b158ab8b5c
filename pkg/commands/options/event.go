package options

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2 15:04"
	layoutISODay   = "2006-1-2"
	layoutISOShort = "1/2 15:04"
)

// EventOptions are the fields of a new event.
type EventOptions struct {
	Type        string
	Destination string
	OnString    string
	ForString   string
	Price       int
	Offers      []string
	Favourite   bool
}

func AddEventArgs(cmd *cobra.Command, o *EventOptions) {
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(event.Flight),
		Wrap80("Event type, one of "+join(event.AllTypes())+"."))
	cmd.Flags().StringVarP(&o.Destination, "to", "d", "",
		"Destination name.")
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Start of the event, example: --on="2026-3-18 08:10" or --on="3/18 08:10".`)
	cmd.Flags().StringVar(&o.ForString, "for", "1h",
		`How long the event lasts, example: --for=90m, --for=2d.`)
	cmd.Flags().IntVarP(&o.Price, "price", "p", 0,
		"Base price in whole euros.")
	cmd.Flags().StringSliceVar(&o.Offers, "offer", nil,
		"Offer id to add, repeatable.")
	cmd.Flags().BoolVar(&o.Favourite, "favourite", false,
		"Mark the event as a favourite.")

	_ = cmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return names(event.AllTypes()), cobra.ShellCompDirectiveNoFileComp
	})
}

// GetOn parses --on in loc. An empty flag gives a zero time.
func (o *EventOptions) GetOn(loc *time.Location, now time.Time) (time.Time, error) {
	if o.OnString == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(layoutISO, o.OnString, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutISODay, o.OnString, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutISOShort, o.OnString, loc)
	if err != nil {
		return time.Time{}, errors.New(`unable to parse --on, expected "2026-3-18 08:10" or "3/18 08:10"`)
	}
	// Let the year be the same.
	t = t.AddDate(now.Year(), 0, 0)
	// A date already behind us this year means next year.
	if t.Before(now) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}

// GetFor parses --for.
func (o *EventOptions) GetFor() (time.Duration, error) {
	return timeutil.ParseSpan(o.ForString)
}

// Request converts the flags into a service request.
func (o *EventOptions) Request(loc *time.Location, now time.Time) (app.EventRequest, time.Duration, error) {
	on, err := o.GetOn(loc, now)
	if err != nil {
		return app.EventRequest{}, 0, err
	}
	span, err := o.GetFor()
	if err != nil {
		return app.EventRequest{}, 0, err
	}
	return app.EventRequest{
		Type:        o.Type,
		Destination: strings.TrimSpace(o.Destination),
		Start:       on,
		BasePrice:   o.Price,
		Offers:      o.Offers,
		Favourite:   o.Favourite,
	}, span, nil
}
