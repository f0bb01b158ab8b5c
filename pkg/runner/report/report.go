// Package report provides the runner behind `trip stats`.
package report

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/printers"
)

// Report prints the trip header and the per-type statistics.
type Report struct {
	Service *app.Service
	Format  printers.Format
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	r, err := n.Service.Report(ctx)
	if err != nil {
		return err
	}
	if n.Format != printers.FormatPretty {
		return printers.Encode(n.Out, n.Format, r)
	}

	pp := printers.New(n.Out)
	pp.Info(r.Info)
	pp.NewLine()
	pp.Stats(r.Stats)
	return nil
}
