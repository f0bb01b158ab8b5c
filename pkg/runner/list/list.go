// Package list provides the runner behind `trip list`.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/printers"
	"tableflip.dev/trip/pkg/viewmodel"
)

// List prints the trip board.
type List struct {
	Service  *app.Service
	Filter   model.FilterType
	Sort     viewmodel.SortType
	Format   printers.Format
	ShowID   bool
	Calendar bool
	Out      io.Writer
}

func (n *List) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	layout, err := n.Service.Board(ctx, n.Filter, n.Sort)
	if err != nil {
		return err
	}

	if n.Format != printers.FormatPretty {
		events := layout.Events()
		if events == nil {
			events = []*event.Event{}
		}
		return printers.Encode(n.Out, n.Format, events)
	}

	pp := printers.New(n.Out)
	pp.ShowID = n.ShowID
	pp.Loc = n.Service.Location()
	if n.Calendar {
		pp.Calendar(layout.Events()...)
		pp.NewLine()
	}
	pp.Board(layout)
	return nil
}
