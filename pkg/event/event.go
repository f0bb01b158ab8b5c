// Package event defines the trip event data model shared by the store, the
// collection model and the controllers.
package event

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalid is wrapped by every validation failure.
	ErrInvalid = errors.New("event: invalid")
)

// Photo is a destination picture.
type Photo struct {
	Src         string `json:"src"`
	Description string `json:"description"`
}

// Destination describes where an event takes place.
type Destination struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Photos      []Photo `json:"pictures,omitempty"`
}

// Offer is an optional extra for an event type.
type Offer struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price int    `json:"price"`
}

// Event is one leg of the trip.
type Event struct {
	ID            string      `json:"id,omitempty"`
	Type          Type        `json:"type"`
	Destination   Destination `json:"destination"`
	Start         Timestamp   `json:"date_from"`
	End           Timestamp   `json:"date_to"`
	BasePrice     int         `json:"base_price"`
	Offers        []Offer     `json:"offers,omitempty"`
	CheckedOffers []Offer     `json:"checked_offers,omitempty"`
	IsFavourite   bool        `json:"is_favorite"`
}

// New returns a blank event ready for the creation form.
func New(now time.Time) *Event {
	return &Event{
		Type:  Flight,
		Start: At(now),
		End:   At(now),
	}
}

// Duration is the time between start and end; never negative.
func (e *Event) Duration() time.Duration {
	if e == nil || e.End.Before(e.Start.Time) {
		return 0
	}
	return e.End.Sub(e.Start.Time)
}

// TotalPrice is the base price plus every checked offer.
func (e *Event) TotalPrice() int {
	if e == nil {
		return 0
	}
	total := e.BasePrice
	for _, o := range e.CheckedOffers {
		total += o.Price
	}
	return total
}

// IsChecked reports whether the offer with id is among the checked offers.
func (e *Event) IsChecked(id string) bool {
	for _, o := range e.CheckedOffers {
		if o.ID == id {
			return true
		}
	}
	return false
}

// IsNew reports whether the event has not been persisted yet.
func (e *Event) IsNew() bool {
	return e == nil || e.ID == ""
}

// Validate checks the event invariants.
func (e *Event) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrInvalid)
	}
	if _, err := ParseType(string(e.Type)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if e.Destination.Name == "" {
		return fmt.Errorf("%w: destination required", ErrInvalid)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("%w: start and end required", ErrInvalid)
	}
	if e.End.Before(e.Start.Time) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalid, e.End, e.Start)
	}
	if e.BasePrice < 0 {
		return fmt.Errorf("%w: negative base price %d", ErrInvalid, e.BasePrice)
	}
	for _, checked := range e.CheckedOffers {
		if !hasOffer(e.Offers, checked.ID) {
			return fmt.Errorf("%w: checked offer %q is not offered for %s", ErrInvalid, checked.ID, e.Type)
		}
	}
	return nil
}

// Clone returns a deep copy so drafts never drift into stored events.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Destination.Photos = append([]Photo(nil), e.Destination.Photos...)
	cp.Offers = append([]Offer(nil), e.Offers...)
	cp.CheckedOffers = append([]Offer(nil), e.CheckedOffers...)
	return &cp
}

// Equal compares two events field by field.
func (e *Event) Equal(o *Event) bool {
	if e == nil || o == nil {
		return e == o
	}
	if e.ID != o.ID || e.Type != o.Type || e.BasePrice != o.BasePrice || e.IsFavourite != o.IsFavourite {
		return false
	}
	if !e.Start.Equal(o.Start.Time) || !e.End.Equal(o.End.Time) {
		return false
	}
	if e.Destination.Name != o.Destination.Name || e.Destination.Description != o.Destination.Description {
		return false
	}
	if len(e.Destination.Photos) != len(o.Destination.Photos) {
		return false
	}
	for i := range e.Destination.Photos {
		if e.Destination.Photos[i] != o.Destination.Photos[i] {
			return false
		}
	}
	return offersEqual(e.Offers, o.Offers) && offersEqual(e.CheckedOffers, o.CheckedOffers)
}

func (e *Event) String() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s %s", e.Type.Emoji(), e.Type.Label(), e.Destination.Name)
}

func hasOffer(list []Offer, id string) bool {
	for _, o := range list {
		if o.ID == id {
			return true
		}
	}
	return false
}

func offersEqual(a, b []Offer) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
