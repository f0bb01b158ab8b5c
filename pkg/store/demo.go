package store

import (
	"time"

	"tableflip.dev/trip/pkg/event"
)

// DemoEvents is a short sample trip starting the day after now.
func DemoEvents(now time.Time) []*event.Event {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	at := func(d, h, m int) event.Timestamp {
		return event.At(day.AddDate(0, 0, d).Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute))
	}
	destinations := DefaultDestinations()
	offers := DefaultOffers()

	return []*event.Event{
		{
			Type:          event.Flight,
			Destination:   destinations[0],
			Start:         at(0, 8, 10),
			End:           at(0, 10, 5),
			BasePrice:     160,
			Offers:        offers[event.Flight],
			CheckedOffers: offers[event.Flight][:1],
		},
		{
			Type:        event.Taxi,
			Destination: destinations[0],
			Start:       at(0, 10, 30),
			End:         at(0, 11, 0),
			BasePrice:   20,
			Offers:      offers[event.Taxi],
		},
		{
			Type:          event.CheckIn,
			Destination:   destinations[0],
			Start:         at(0, 12, 0),
			End:           at(1, 10, 0),
			BasePrice:     110,
			Offers:        offers[event.CheckIn],
			CheckedOffers: offers[event.CheckIn],
			IsFavourite:   true,
		},
		{
			Type:        event.Train,
			Destination: destinations[2],
			Start:       at(1, 11, 15),
			End:         at(1, 18, 40),
			BasePrice:   90,
			Offers:      offers[event.Train],
		},
		{
			Type:        event.Sightseeing,
			Destination: destinations[2],
			Start:       at(2, 9, 0),
			End:         at(2, 13, 30),
			BasePrice:   40,
			Offers:      offers[event.Sightseeing],
		},
		{
			Type:        event.Drive,
			Destination: destinations[1],
			Start:       at(2, 15, 0),
			End:         at(2, 17, 15),
			BasePrice:   70,
			Offers:      offers[event.Drive],
		},
	}
}
