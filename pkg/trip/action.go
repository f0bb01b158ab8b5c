package trip

import (
	"fmt"

	"tableflip.dev/trip/pkg/event"
)

// Action is a user intent raised by an EventController. The set is closed:
// only the types in this file implement it.
type Action interface {
	Describe() string
	isAction()
}

// AddToFavorite flips the favourite flag of a persisted event.
type AddToFavorite struct {
	ID         string
	NewData    *event.Event
	Controller *EventController
}

// Update saves the edited draft of a persisted event.
type Update struct {
	ID         string
	NewData    *event.Event
	Controller *EventController
}

// Delete removes a persisted event.
type Delete struct {
	ID         string
	Controller *EventController
}

// AddNewEvent persists the pending new event.
type AddNewEvent struct {
	NewData    *event.Event
	Controller *EventController
}

// RemoveNewEvent discards the pending new event form.
type RemoveNewEvent struct{}

// ToEdit hands the edit token to Controller.
type ToEdit struct {
	Controller *EventController
}

func (AddToFavorite) isAction()  {}
func (Update) isAction()         {}
func (Delete) isAction()         {}
func (AddNewEvent) isAction()    {}
func (RemoveNewEvent) isAction() {}
func (ToEdit) isAction()         {}

func (a AddToFavorite) Describe() string {
	return fmt.Sprintf(`action:"add-to-favorite" id:%q favourite:%t`, a.ID, a.NewData != nil && a.NewData.IsFavourite)
}

func (a Update) Describe() string {
	return fmt.Sprintf(`action:"update" id:%q`, a.ID)
}

func (a Delete) Describe() string {
	return fmt.Sprintf(`action:"delete" id:%q`, a.ID)
}

func (a AddNewEvent) Describe() string {
	name := ""
	if a.NewData != nil {
		name = a.NewData.Destination.Name
	}
	return fmt.Sprintf(`action:"add-new-event" destination:%q`, name)
}

func (RemoveNewEvent) Describe() string {
	return `action:"remove-new-event"`
}

func (a ToEdit) Describe() string {
	id := ""
	if a.Controller != nil && a.Controller.event != nil {
		id = a.Controller.event.ID
	}
	return fmt.Sprintf(`action:"to-edit" id:%q`, id)
}
