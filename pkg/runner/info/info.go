// Package info provides the runner behind `trip info`.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/store"
)

// Info prints where trip keeps its data and a short summary of it.
type Info struct {
	Config  *store.Settings
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if override := os.Getenv("TRIP_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(n.Out, "TRIP_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(n.Out, "TRIP_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(n.Out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(n.Out, "Config.location:", n.Config.Loc())
	if n.Config.LogFile != "" {
		_, _ = fmt.Fprintln(n.Out, "Config.log_file:", n.Config.LogFile)
	}

	if n.Service == nil {
		return errors.New("failed to create persistence object")
	}

	events, err := n.Service.Events(ctx, model.FilterEverything)
	if err != nil {
		return err
	}
	destinations, offers, err := n.Service.Catalogs(ctx)
	if err != nil {
		return err
	}
	offerCount := 0
	for _, t := range event.AllTypes() {
		offerCount += len(offers.For(t))
	}

	_, _ = fmt.Fprintf(n.Out, "Events: %d\n", len(events))
	_, _ = fmt.Fprintf(n.Out, "Destinations: %d\n", len(destinations.Names()))
	_, _ = fmt.Fprintf(n.Out, "Offers: %d\n", offerCount)
	if len(events) == 0 {
		return nil
	}

	r, err := n.Service.Report(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.Out, "Trip: %s\n", r.Info.Title)
	_, _ = fmt.Fprintf(n.Out, "Dates: %s\n", r.Info.Dates)
	_, _ = fmt.Fprintf(n.Out, "Cost: € %d\n", r.Info.Cost)
	return nil
}
