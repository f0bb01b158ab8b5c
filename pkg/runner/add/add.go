// Package add provides the runner behind `trip add`.
package add

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/printers"
)

// Add creates one trip event.
type Add struct {
	Service *app.Service
	Request app.EventRequest

	// For sets the end relative to the start when Request.End is zero.
	For         time.Duration
	Interactive bool
	Format      printers.Format
	ShowID      bool

	In  io.Reader
	Out io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}

	if n.Interactive {
		w := wizard{service: n.Service, in: n.In, out: n.Out}
		if err := w.fill(ctx, &n.Request); err != nil {
			return err
		}
	}

	if n.Request.End.IsZero() && !n.Request.Start.IsZero() {
		n.Request.End = n.Request.Start.Add(n.For)
	}

	created, err := n.Service.Add(ctx, n.Request)
	if err != nil {
		return err
	}

	if n.Format != printers.FormatPretty {
		return printers.Encode(n.Out, n.Format, created)
	}

	pp := printers.New(n.Out)
	pp.ShowID = n.ShowID
	pp.Loc = n.Service.Location()
	pp.Title("Added")
	pp.Events(created)
	return nil
}
