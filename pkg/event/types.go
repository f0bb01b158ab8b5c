package event

import (
	"fmt"
	"strings"
)

// Type is the category of a trip event.
type Type string

const (
	Taxi        Type = "taxi"
	Bus         Type = "bus"
	Train       Type = "train"
	Ship        Type = "ship"
	Transport   Type = "transport"
	Drive       Type = "drive"
	Flight      Type = "flight"
	CheckIn     Type = "check-in"
	Sightseeing Type = "sightseeing"
	Restaurant  Type = "restaurant"
)

type typeInfo struct {
	Emoji       string
	Preposition string
	Transfer    bool
}

var types = map[Type]typeInfo{
	Taxi:        {Emoji: "🚕", Preposition: "to", Transfer: true},
	Bus:         {Emoji: "🚌", Preposition: "to", Transfer: true},
	Train:       {Emoji: "🚂", Preposition: "to", Transfer: true},
	Ship:        {Emoji: "🛳", Preposition: "to", Transfer: true},
	Transport:   {Emoji: "🚊", Preposition: "to", Transfer: true},
	Drive:       {Emoji: "🚗", Preposition: "to", Transfer: true},
	Flight:      {Emoji: "✈️", Preposition: "to", Transfer: true},
	CheckIn:     {Emoji: "🏨", Preposition: "in"},
	Sightseeing: {Emoji: "🏛", Preposition: "in"},
	Restaurant:  {Emoji: "🍴", Preposition: "in"},
}

// Transfers lists the transfer types in display order.
func Transfers() []Type {
	return []Type{Taxi, Bus, Train, Ship, Transport, Drive, Flight}
}

// Activities lists the activity (stop) types in display order.
func Activities() []Type {
	return []Type{CheckIn, Sightseeing, Restaurant}
}

// AllTypes returns every known type, transfers first.
func AllTypes() []Type {
	return append(Transfers(), Activities()...)
}

// ParseType converts a string to a Type or returns an error for unknown values.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := types[t]; ok {
		return t, nil
	}
	return "", fmt.Errorf("event: unknown type %q", raw)
}

// IsTransfer reports whether t moves the traveller between places.
func (t Type) IsTransfer() bool {
	return types[t].Transfer
}

func (t Type) Emoji() string {
	return types[t].Emoji
}

// Label renders the form label, e.g. "Taxi to" or "Check-in in".
func (t Type) Label() string {
	info, ok := types[t]
	if !ok {
		return string(t)
	}
	name := string(t)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return name + " " + info.Preposition
}

func (t Type) String() string {
	return string(t)
}
