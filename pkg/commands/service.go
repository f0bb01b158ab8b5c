package commands

import (
	"time"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/store"
)

// loadService reads the configuration and opens the on-disk store. With demo
// the store lives in memory and is seeded with a sample trip.
func loadService(demo bool) (*app.Service, *store.Settings, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	svc := &app.Service{Loc: cfg.Loc()}
	if demo {
		svc.Persistence = store.NewMemory(store.DemoEvents(time.Now())...)
		return svc, cfg, nil
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	svc.Persistence = p
	return svc, cfg, nil
}
