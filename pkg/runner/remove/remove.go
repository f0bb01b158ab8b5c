// Package remove provides the runner behind `trip delete`.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/trip/pkg/app"
)

// Remove deletes events by id.
type Remove struct {
	IDs     []string
	Service *app.Service
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	if len(n.IDs) == 0 {
		return errors.New("requires at least one event id")
	}
	for _, id := range n.IDs {
		if err := n.Service.Delete(ctx, id); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(n.Out, "deleted %s\n", id)
	}
	return nil
}
