// Package favourite provides the runner logic for starring events.
package favourite

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/printers"
)

// Favourite toggles the favourite flag of an event.
type Favourite struct {
	ID      string
	Service *app.Service
	Out     io.Writer
}

// Do flips the flag for the configured event ID and prints the result.
func (n *Favourite) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not favourite, no service")
	}
	e, err := n.Service.ToggleFavourite(ctx, n.ID)
	if err != nil {
		return err
	}

	pp := printers.New(n.Out)
	pp.ShowID = true
	pp.Loc = n.Service.Location()
	if e.IsFavourite {
		pp.Title("Favourite")
	} else {
		pp.Title("Unfavourite")
	}
	pp.Events(e)
	return nil
}
