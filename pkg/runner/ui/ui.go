// Package ui launches the interactive trip board.
package ui

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/logger"
	teaui "tableflip.dev/trip/pkg/tui/app"
)

// UI runs the Bubble Tea program until the user quits.
type UI struct {
	Service *app.Service

	LogFile     string
	LogLevel    string
	CallTimeout time.Duration
}

func (d *UI) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not open the board, no service")
	}

	log, closer, err := logger.Open(d.LogFile, d.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	log.Info("starting trip board", "log_level", d.LogLevel)
	err = teaui.Run(ctx, d.Service, teaui.Options{
		Logger:      log,
		CallTimeout: d.CallTimeout,
	})
	if err != nil {
		log.Error("trip board stopped", "error", err)
		return err
	}
	log.Info("trip board closed")
	return nil
}
