package model

import (
	"strings"
	"sync"

	"tableflip.dev/trip/pkg/event"
)

// Destinations is the catalog of known destinations.
type Destinations struct {
	mu   sync.RWMutex
	list []event.Destination
}

func NewDestinations(list []event.Destination) *Destinations {
	d := &Destinations{}
	d.Set(list)
	return d
}

func (d *Destinations) Set(list []event.Destination) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.list = append([]event.Destination(nil), list...)
}

// Names returns destination names in catalog order.
func (d *Destinations) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.list))
	for _, dest := range d.list {
		names = append(names, dest.Name)
	}
	return names
}

// Lookup finds a destination by name, case-insensitively.
func (d *Destinations) Lookup(name string) (event.Destination, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	name = strings.TrimSpace(name)
	for _, dest := range d.list {
		if strings.EqualFold(dest.Name, name) {
			dest.Photos = append([]event.Photo(nil), dest.Photos...)
			return dest, true
		}
	}
	return event.Destination{}, false
}

// Offers is the catalog of offers per event type.
type Offers struct {
	mu     sync.RWMutex
	byType map[event.Type][]event.Offer
}

func NewOffers(byType map[event.Type][]event.Offer) *Offers {
	o := &Offers{}
	o.Set(byType)
	return o
}

func (o *Offers) Set(byType map[event.Type][]event.Offer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.byType = make(map[event.Type][]event.Offer, len(byType))
	for t, list := range byType {
		o.byType[t] = append([]event.Offer(nil), list...)
	}
}

// For returns the offers available for t.
func (o *Offers) For(t event.Type) []event.Offer {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return append([]event.Offer(nil), o.byType[t]...)
}
