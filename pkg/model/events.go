// Package model holds the in-memory collection store for trip events and the
// catalogs the edit form draws from.
package model

import (
	"sync"
	"time"

	"tableflip.dev/trip/pkg/event"
)

// Handler is a change notification callback.
type Handler func()

// TripEvents is the canonical in-memory collection of trip events. Writers
// go through Add, Update, DeleteEvent and Sync; subscribers are notified of
// filter changes and of collection refreshes coming from outside the UI.
type TripEvents struct {
	mu     sync.RWMutex
	events []*event.Event
	filter FilterType
	now    func() time.Time

	filterHandlers []Handler
	syncHandlers   []Handler
}

// Option customises a TripEvents.
type Option func(*TripEvents)

// WithClock overrides the clock used by the future and past filters.
func WithClock(now func() time.Time) Option {
	return func(m *TripEvents) {
		if now != nil {
			m.now = now
		}
	}
}

// NewTripEvents creates an empty collection.
func NewTripEvents(opts ...Option) *TripEvents {
	m := &TripEvents{
		filter: FilterEverything,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetEvents replaces the collection without notifying anyone. Used for the
// initial load, before the board is rendered.
func (m *TripEvents) SetEvents(events []*event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = cloneList(events)
}

// Sync replaces the collection with a fresh server copy and notifies the
// server-sync handlers when anything differs. It reports whether it did.
func (m *TripEvents) Sync(events []*event.Event) bool {
	m.mu.Lock()
	if sameEvents(m.events, events) {
		m.mu.Unlock()
		return false
	}
	m.events = cloneList(events)
	handlers := append([]Handler(nil), m.syncHandlers...)
	m.mu.Unlock()

	for _, h := range handlers {
		h()
	}
	return true
}

// GetAll returns every event regardless of the active filter.
func (m *TripEvents) GetAll() []*event.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*event.Event(nil), m.events...)
}

// Get returns the events matching the active filter.
func (m *TripEvents) Get() []*event.Event {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter.Apply(m.events, m.now())
}

// Find returns the stored event with id.
func (m *TripEvents) Find(id string) (*event.Event, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx := m.indexOf(id); idx >= 0 {
		return m.events[idx], true
	}
	return nil, false
}

func (m *TripEvents) IsEmpty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events) == 0
}

func (m *TripEvents) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// Add appends a persisted event.
func (m *TripEvents) Add(e *event.Event) {
	if e == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
}

// Update replaces the event with id. It reports false if id is unknown.
func (m *TripEvents) Update(id string, e *event.Event) bool {
	if e == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}
	m.events[idx] = e
	return true
}

// DeleteEvent removes the event with id. It reports false if id is unknown.
func (m *TripEvents) DeleteEvent(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(id)
	if idx < 0 {
		return false
	}
	m.events = append(m.events[:idx:idx], m.events[idx+1:]...)
	return true
}

// Filter returns the active filter.
func (m *TripEvents) Filter() FilterType {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

// SetFilter switches the active filter and notifies the filter handlers.
func (m *TripEvents) SetFilter(f FilterType) {
	m.mu.Lock()
	m.filter = f
	handlers := append([]Handler(nil), m.filterHandlers...)
	m.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

func (m *TripEvents) AddFilterChangeHandler(h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filterHandlers = append(m.filterHandlers, h)
}

func (m *TripEvents) AddServerSyncHandler(h Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncHandlers = append(m.syncHandlers, h)
}

func (m *TripEvents) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range m.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func cloneList(events []*event.Event) []*event.Event {
	out := make([]*event.Event, 0, len(events))
	for _, e := range events {
		if e != nil {
			out = append(out, e.Clone())
		}
	}
	return out
}

func sameEvents(a, b []*event.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
