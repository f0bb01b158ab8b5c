// Package demo seeds a store with a sample trip.
package demo

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/printers"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/viewmodel"
)

// Demo writes the default catalogs and the sample trip.
type Demo struct {
	Service *app.Service
	Out     io.Writer
}

func (n *Demo) Do(ctx context.Context) error {
	if n.Service == nil || n.Service.Persistence == nil {
		return errors.New("can not seed, no persistence")
	}
	p := n.Service.Persistence
	if err := p.SetDestinations(store.DefaultDestinations()); err != nil {
		return fmt.Errorf("demo: destinations: %w", err)
	}
	if err := p.SetOffers(store.DefaultOffers()); err != nil {
		return fmt.Errorf("demo: offers: %w", err)
	}

	created, err := n.Service.Seed(ctx, store.DemoEvents(n.Service.Clock()))
	if err != nil {
		return err
	}

	pp := printers.New(n.Out)
	pp.ShowID = true
	pp.Loc = n.Service.Location()
	pp.TitleWithCount("Seeded", len(created))
	pp.Board(viewmodel.Arrange(created, viewmodel.SortEvent, pp.Loc))
	return nil
}
