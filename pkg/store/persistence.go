package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/trip/pkg/event"
)

// ErrNotFound is returned when an event id is unknown to the store.
var ErrNotFound = errors.New("store: event not found")

// Persistence is the persistence service backing the trip board.
type Persistence interface {
	ListTripEvents(ctx context.Context) ([]*event.Event, error)
	GetTripEvent(ctx context.Context, id string) (*event.Event, error)
	CreateTripEvent(ctx context.Context, ev *event.Event) (*event.Event, error)
	UpdateTripEvent(ctx context.Context, id string, ev *event.Event) (*event.Event, error)
	DeleteTripEvent(ctx context.Context, id string) error
	Destinations(ctx context.Context) ([]event.Destination, error)
	Offers(ctx context.Context) (map[event.Type][]event.Offer, error)
	SetDestinations(destinations []event.Destination) error
	SetOffers(offers map[event.Type][]event.Offer) error
	Watch(ctx context.Context) (<-chan Change, error)
}

const (
	eventsBucket  = "events"
	catalogBucket = "catalog"

	destinationsKey = catalogBucket + "/destinations"
	offersKey       = catalogBucket + "/offers"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = settings
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*event.Event, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e := &event.Event{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	e.ID = keyToPathTransform(key).FileName
	return e, nil
}

func (p *persistence) write(e *event.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(eventKey(e.ID), data)
}

func (p *persistence) ListTripEvents(ctx context.Context) ([]*event.Event, error) {
	all := make([]*event.Event, 0)
	for key := range p.d.KeysPrefix(eventsBucket+"/", ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sortEvents(all)
	return all, nil
}

func (p *persistence) GetTripEvent(_ context.Context, id string) (*event.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return p.read(eventKey(id))
}

func (p *persistence) CreateTripEvent(ctx context.Context, ev *event.Event) (*event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	created := ev.Clone()
	created.ID = uuid.NewString()
	if err := p.write(created); err != nil {
		return nil, fmt.Errorf("store: create event: %w", err)
	}
	return created, nil
}

func (p *persistence) UpdateTripEvent(ctx context.Context, id string, ev *event.Event) (*event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" || !p.d.Has(eventKey(id)) {
		return nil, ErrNotFound
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	updated := ev.Clone()
	updated.ID = id
	if err := p.write(updated); err != nil {
		return nil, fmt.Errorf("store: update event: %w", err)
	}
	return updated, nil
}

func (p *persistence) DeleteTripEvent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" || !p.d.Has(eventKey(id)) {
		return ErrNotFound
	}
	if err := p.d.Erase(eventKey(id)); err != nil {
		return fmt.Errorf("store: delete event: %w", err)
	}
	return nil
}

func (p *persistence) Destinations(_ context.Context) ([]event.Destination, error) {
	if !p.d.Has(destinationsKey) {
		return DefaultDestinations(), nil
	}
	val, err := p.d.Read(destinationsKey)
	if err != nil {
		return nil, err
	}
	var list []event.Destination
	if err := json.Unmarshal(val, &list); err != nil {
		return nil, fmt.Errorf("store: decode destinations: %w", err)
	}
	return list, nil
}

func (p *persistence) Offers(_ context.Context) (map[event.Type][]event.Offer, error) {
	if !p.d.Has(offersKey) {
		return DefaultOffers(), nil
	}
	val, err := p.d.Read(offersKey)
	if err != nil {
		return nil, err
	}
	offers := make(map[event.Type][]event.Offer)
	if err := json.Unmarshal(val, &offers); err != nil {
		return nil, fmt.Errorf("store: decode offers: %w", err)
	}
	return offers, nil
}

func (p *persistence) SetDestinations(destinations []event.Destination) error {
	data, err := json.Marshal(destinations)
	if err != nil {
		return err
	}
	return p.d.Write(destinationsKey, data)
}

func (p *persistence) SetOffers(offers map[event.Type][]event.Offer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return p.d.Write(offersKey, data)
}

// sortEvents orders by start, then id, so list order is stable across reads.
func sortEvents(events []*event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		left, right := events[i], events[j]
		if left.Start.Equal(right.Start.Time) {
			return left.ID < right.ID
		}
		return left.Start.Before(right.Start.Time)
	})
}

func eventKey(id string) string {
	return eventsBucket + "/" + id
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string(nil), pathKey.Path...), pathKey.FileName), "/")
}
