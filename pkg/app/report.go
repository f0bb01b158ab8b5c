package app

import (
	"context"

	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/stats"
)

// Report is the trip header together with its statistics.
type Report struct {
	Info  stats.Info   `json:"info" yaml:"info"`
	Stats stats.Report `json:"stats" yaml:"stats"`
}

// Report summarises every event. Statistics ignore the board filter.
func (s *Service) Report(ctx context.Context) (Report, error) {
	all, err := s.Events(ctx, model.FilterEverything)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Info:  stats.TripInfo(all, s.Location()),
		Stats: stats.Compute(all),
	}, nil
}
