package trip

import (
	"time"

	"tableflip.dev/trip/pkg/viewmodel"
)

// Message is a status placeholder shown in place of, or above, the list.
type Message string

const (
	MessageNoEvents Message = "Click New Event to create your first point"
	MessageLoading  Message = "Loading..."
	MessageError    Message = "Something went wrong. Please try again later."
)

// Day is a rendered day group.
type Day struct {
	Date    time.Time
	Counter int
	Items   []*EventController
}

// Board is the rendering contract handed to the view layer. It is rebuilt
// from the controller on every call and must be treated as read-only.
type Board struct {
	Hidden  bool
	Message Message

	// NewEvent is the pending creation form; its Mode tells where it goes.
	NewEvent *EventController

	// Mounted is false until the sort bar and day list exist.
	Mounted bool
	Sort    viewmodel.SortType
	Grouped bool
	Days    []Day
}

// Items flattens the board in display order, new event first.
func (b Board) Items() []*EventController {
	var out []*EventController
	if b.NewEvent != nil {
		out = append(out, b.NewEvent)
	}
	for _, d := range b.Days {
		out = append(out, d.Items...)
	}
	return out
}
