package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/viewmodel"
)

// Service provides high-level operations on trip events.
// It wraps persistence and the catalogs so the CLI, MCP server and UI share logic.
type Service struct {
	Persistence store.Persistence
	Loc         *time.Location
	Now         func() time.Time
}

var ErrNoPersistence = errors.New("app: no persistence configured")

// EventRequest describes an event by catalog names and offer ids.
type EventRequest struct {
	Type        string    `json:"type"`
	Destination string    `json:"destination"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	BasePrice   int       `json:"basePrice"`
	Offers      []string  `json:"offers,omitempty"`
	Favourite   bool      `json:"isFavorite,omitempty"`
}

// Location is the zone used for day grouping; Local when unset.
func (s *Service) Location() *time.Location {
	if s.Loc == nil {
		return time.Local
	}
	return s.Loc
}

// Clock returns the current instant.
func (s *Service) Clock() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Events lists events passing filter, ordered by start.
func (s *Service) Events(ctx context.Context, filter model.FilterType) ([]*event.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	all, err := s.Persistence.ListTripEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: list events: %w", err)
	}
	return filter.Apply(all, s.Clock()), nil
}

// Get returns the event with id.
func (s *Service) Get(ctx context.Context, id string) (*event.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	e, err := s.Persistence.GetTripEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("app: get event %q: %w", id, err)
	}
	return e, nil
}

// Board arranges filtered events the way the trip board shows them.
func (s *Service) Board(ctx context.Context, filter model.FilterType, sortType viewmodel.SortType) (viewmodel.Layout, error) {
	events, err := s.Events(ctx, filter)
	if err != nil {
		return viewmodel.Layout{}, err
	}
	return viewmodel.Arrange(events, sortType, s.Location()), nil
}

// Catalogs loads the destination and offer catalogs.
func (s *Service) Catalogs(ctx context.Context) (*model.Destinations, *model.Offers, error) {
	if s.Persistence == nil {
		return nil, nil, ErrNoPersistence
	}
	destinations, err := s.Persistence.Destinations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("app: load destinations: %w", err)
	}
	offers, err := s.Persistence.Offers(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("app: load offers: %w", err)
	}
	return model.NewDestinations(destinations), model.NewOffers(offers), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Change, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Build resolves a request against the catalogs into an event.
func (s *Service) Build(ctx context.Context, req EventRequest) (*event.Event, error) {
	destinations, offers, err := s.Catalogs(ctx)
	if err != nil {
		return nil, err
	}
	t, err := event.ParseType(req.Type)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	e := &event.Event{
		Type:        t,
		Start:       event.At(req.Start),
		End:         event.At(req.End),
		BasePrice:   req.BasePrice,
		Offers:      offers.For(t),
		IsFavourite: req.Favourite,
	}
	if dest, ok := destinations.Lookup(req.Destination); ok {
		e.Destination = dest
	} else {
		e.Destination = event.Destination{Name: strings.TrimSpace(req.Destination)}
	}
	for _, id := range req.Offers {
		found := false
		for _, o := range e.Offers {
			if o.ID == id {
				e.CheckedOffers = append(e.CheckedOffers, o)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("app: %w: unknown offer %q for %s", event.ErrInvalid, id, t)
		}
	}
	return e, nil
}

// Add creates an event from req.
func (s *Service) Add(ctx context.Context, req EventRequest) (*event.Event, error) {
	e, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	created, err := s.Persistence.CreateTripEvent(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("app: create event: %w", err)
	}
	return created, nil
}

// Edit applies fn to a copy of the event with id and stores the result.
func (s *Service) Edit(ctx context.Context, id string, fn func(*event.Event) error) (*event.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	current, err := s.Persistence.GetTripEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("app: get event %q: %w", id, err)
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	updated, err := s.Persistence.UpdateTripEvent(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("app: update event %q: %w", id, err)
	}
	return updated, nil
}

// Replace overwrites the event with id using req.
func (s *Service) Replace(ctx context.Context, id string, req EventRequest) (*event.Event, error) {
	e, err := s.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.Edit(ctx, id, func(current *event.Event) error {
		*current = *e
		current.ID = id
		return nil
	})
}

// ToggleFavourite flips the favourite flag of the event with id.
func (s *Service) ToggleFavourite(ctx context.Context, id string) (*event.Event, error) {
	return s.Edit(ctx, id, func(e *event.Event) error {
		e.IsFavourite = !e.IsFavourite
		return nil
	})
}

// Delete removes an event permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if err := s.Persistence.DeleteTripEvent(ctx, id); err != nil {
		return fmt.Errorf("app: delete event %q: %w", id, err)
	}
	return nil
}

// Seed stores every event of events, typically store.DemoEvents.
func (s *Service) Seed(ctx context.Context, events []*event.Event) ([]*event.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	created := make([]*event.Event, 0, len(events))
	for _, e := range events {
		c, err := s.Persistence.CreateTripEvent(ctx, e)
		if err != nil {
			return created, fmt.Errorf("app: seed %s: %w", e, err)
		}
		created = append(created, c)
	}
	return created, nil
}
