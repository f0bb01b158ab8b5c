package store

import "tableflip.dev/trip/pkg/event"

// DefaultDestinations is served until a catalog is stored with SetDestinations.
func DefaultDestinations() []event.Destination {
	return []event.Destination{
		{
			Name:        "Amsterdam",
			Description: "Amsterdam, canals, narrow houses and more bicycles than people.",
			Photos:      []event.Photo{{Src: "img/photos/amsterdam-1.jpg", Description: "Amsterdam canal"}},
		},
		{
			Name:        "Chamonix",
			Description: "Chamonix, at the foot of Mont Blanc, a classic base for alpine walks.",
			Photos:      []event.Photo{{Src: "img/photos/chamonix-1.jpg", Description: "Mont Blanc"}},
		},
		{
			Name:        "Geneva",
			Description: "Geneva, a city on the lake with a famous water jet.",
			Photos:      []event.Photo{{Src: "img/photos/geneva-1.jpg", Description: "Jet d'Eau"}},
		},
		{
			Name:        "Saint Petersburg",
			Description: "Saint Petersburg, white nights and bridges that open after midnight.",
		},
	}
}

// DefaultOffers is served until a catalog is stored with SetOffers.
func DefaultOffers() map[event.Type][]event.Offer {
	return map[event.Type][]event.Offer{
		event.Taxi: {
			{ID: "taxi-business", Title: "Upgrade to a business class", Price: 120},
			{ID: "taxi-radio", Title: "Choose the radio station", Price: 60},
		},
		event.Bus: {
			{ID: "bus-seats", Title: "Choose seats", Price: 5},
		},
		event.Train: {
			{ID: "train-meal", Title: "Add meal", Price: 15},
			{ID: "train-comfort", Title: "Switch to comfort", Price: 80},
		},
		event.Flight: {
			{ID: "flight-luggage", Title: "Add luggage", Price: 30},
			{ID: "flight-comfort", Title: "Switch to comfort class", Price: 100},
			{ID: "flight-meal", Title: "Add meal", Price: 15},
		},
		event.Drive: {
			{ID: "drive-rent", Title: "Rent a car", Price: 200},
		},
		event.CheckIn: {
			{ID: "checkin-breakfast", Title: "Add breakfast", Price: 50},
		},
		event.Sightseeing: {
			{ID: "sight-tickets", Title: "Book tickets", Price: 40},
			{ID: "sight-lunch", Title: "Lunch in city", Price: 30},
		},
	}
}
