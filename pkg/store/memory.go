package store

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tableflip.dev/trip/pkg/event"
)

// Memory is a Persistence kept in process memory. It backs `trip ui --demo`
// and tests. Fail, when set, rejects every mutation with its error.
type Memory struct {
	mu           sync.Mutex
	events       map[string]*event.Event
	destinations []event.Destination
	offers       map[event.Type][]event.Offer
	watchers     []chan Change

	Fail error
}

var _ Persistence = (*Memory)(nil)

// NewMemory seeds an in-memory store with events and the default catalogs.
// Events without an id get one.
func NewMemory(events ...*event.Event) *Memory {
	m := &Memory{
		events:       make(map[string]*event.Event, len(events)),
		destinations: DefaultDestinations(),
		offers:       DefaultOffers(),
	}
	for _, e := range events {
		if e == nil {
			continue
		}
		cp := e.Clone()
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		m.events[cp.ID] = cp
	}
	return m
}

func (m *Memory) ListTripEvents(ctx context.Context) ([]*event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*event.Event, 0, len(m.events))
	for _, e := range m.events {
		all = append(all, e.Clone())
	}
	sortEvents(all)
	return all, nil
}

func (m *Memory) GetTripEvent(_ context.Context, id string) (*event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return e.Clone(), nil
}

func (m *Memory) CreateTripEvent(ctx context.Context, ev *event.Event) (*event.Event, error) {
	if err := m.check(ctx, ev); err != nil {
		return nil, err
	}
	created := ev.Clone()
	created.ID = uuid.NewString()

	m.mu.Lock()
	m.events[created.ID] = created.Clone()
	m.mu.Unlock()

	m.notify(ChangeEvents)
	return created, nil
}

func (m *Memory) UpdateTripEvent(ctx context.Context, id string, ev *event.Event) (*event.Event, error) {
	if err := m.check(ctx, ev); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	updated := ev.Clone()
	updated.ID = id

	m.mu.Lock()
	if _, ok := m.events[id]; !ok {
		m.mu.Unlock()
		return nil, ErrNotFound
	}
	m.events[id] = updated.Clone()
	m.mu.Unlock()

	m.notify(ChangeEvents)
	return updated, nil
}

func (m *Memory) DeleteTripEvent(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Fail != nil {
		return m.Fail
	}
	id = strings.TrimSpace(id)

	m.mu.Lock()
	if _, ok := m.events[id]; !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.events, id)
	m.mu.Unlock()

	m.notify(ChangeEvents)
	return nil
}

func (m *Memory) Destinations(_ context.Context) ([]event.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]event.Destination(nil), m.destinations...), nil
}

func (m *Memory) Offers(_ context.Context) (map[event.Type][]event.Offer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[event.Type][]event.Offer, len(m.offers))
	for t, list := range m.offers {
		out[t] = append([]event.Offer(nil), list...)
	}
	return out, nil
}

func (m *Memory) SetDestinations(destinations []event.Destination) error {
	m.mu.Lock()
	m.destinations = append([]event.Destination(nil), destinations...)
	m.mu.Unlock()
	m.notify(ChangeCatalog)
	return nil
}

func (m *Memory) SetOffers(offers map[event.Type][]event.Offer) error {
	m.mu.Lock()
	m.offers = make(map[event.Type][]event.Offer, len(offers))
	for t, list := range offers {
		m.offers[t] = append([]event.Offer(nil), list...)
	}
	m.mu.Unlock()
	m.notify(ChangeCatalog)
	return nil
}

// Watch reports every mutation made through m until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	ch := make(chan Change, 16)
	m.mu.Lock()
	m.watchers = append(m.watchers, ch)
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, w := range m.watchers {
			if w == ch {
				m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch, nil
}

func (m *Memory) check(ctx context.Context, ev *event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Fail != nil {
		return m.Fail
	}
	return ev.Validate()
}

func (m *Memory) notify(ct ChangeType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.watchers {
		select {
		case w <- Change{Type: ct}:
		default:
		}
	}
}
