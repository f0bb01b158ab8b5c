package trip

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/event"
)

// Mode is the view mode of an EventController.
type Mode int

const (
	// ModeDefault renders the event read-only.
	ModeDefault Mode = iota
	// ModeEdit renders the edit form of a persisted event.
	ModeEdit
	// ModeAdd renders the creation form above the day list.
	ModeAdd
	// ModeFirst renders the creation form as the only content of an empty board.
	ModeFirst
)

// Editing reports whether m shows a form.
func (m Mode) Editing() bool {
	return m != ModeDefault
}

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeAdd:
		return "add"
	case ModeFirst:
		return "first"
	default:
		return "default"
	}
}

// Status tracks a form waiting on persistence.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusDeleting
)

// ShakeDuration is how long the failure cue lasts.
var ShakeDuration = 600 * time.Millisecond

// Destinations resolves destination names for the edit form.
type Destinations interface {
	Names() []string
	Lookup(name string) (event.Destination, bool)
}

// Offers resolves the offer catalog of an event type.
type Offers interface {
	For(t event.Type) []event.Offer
}

// EventController owns the view of a single event. It never talks to
// persistence: gestures become Actions handed to dispatch.
type EventController struct {
	key          int
	dispatch     func(Action) tea.Cmd
	destinations Destinations
	offers       Offers

	event  *event.Event
	draft  *event.Event
	mode   Mode
	status Status

	shaking   bool
	shakes    int
	shakeSeq  int
	destroyed bool
}

func newEventController(key int, dispatch func(Action) tea.Cmd, destinations Destinations, offers Offers) *EventController {
	return &EventController{
		key:          key,
		dispatch:     dispatch,
		destinations: destinations,
		offers:       offers,
	}
}

// Render rebuilds the view for ev in mode, replacing any previous view and
// discarding the draft.
func (c *EventController) Render(ev *event.Event, mode Mode) {
	if c.destroyed {
		return
	}
	c.event = ev
	c.draft = ev.Clone()
	c.mode = mode
	c.status = StatusIdle
	c.shaking = false
}

// SetDefaultView closes the edit form of a persisted event. Idempotent.
func (c *EventController) SetDefaultView() {
	if c.destroyed || c.mode != ModeEdit {
		return
	}
	c.mode = ModeDefault
	c.draft = c.event.Clone()
	c.status = StatusIdle
	c.shaking = false
}

// Shake plays the failure cue. Mode and draft are kept so the user can retry
// or cancel; the form is re-enabled.
func (c *EventController) Shake() tea.Cmd {
	if c.destroyed {
		return nil
	}
	c.status = StatusIdle
	c.shaking = true
	c.shakes++
	c.shakeSeq++
	seq := c.shakeSeq
	return tea.Tick(ShakeDuration, func(time.Time) tea.Msg {
		return ShakeDoneMsg{Controller: c, seq: seq}
	})
}

func (c *EventController) shakeDone(seq int) {
	if seq == c.shakeSeq {
		c.shaking = false
	}
}

// Destroy detaches the controller. Every later call is a no-op.
func (c *EventController) Destroy() {
	c.destroyed = true
	c.shaking = false
}

// OpenEdit switches a read-only event to its edit form.
func (c *EventController) OpenEdit() tea.Cmd {
	if c.destroyed || c.mode != ModeDefault {
		return nil
	}
	cmd := c.dispatch(ToEdit{Controller: c})
	c.mode = ModeEdit
	c.draft = c.event.Clone()
	c.status = StatusIdle
	return cmd
}

// CloseEdit rolls the form back up without saving.
func (c *EventController) CloseEdit() tea.Cmd {
	return c.Cancel()
}

// Cancel abandons the form: persisted events return to the read-only view,
// a new event is discarded.
func (c *EventController) Cancel() tea.Cmd {
	if c.destroyed || c.status != StatusIdle {
		return nil
	}
	switch c.mode {
	case ModeEdit:
		c.SetDefaultView()
		return nil
	case ModeAdd, ModeFirst:
		return c.dispatch(RemoveNewEvent{})
	}
	return nil
}

// Save submits the draft. An invalid draft shakes without dispatching.
func (c *EventController) Save() tea.Cmd {
	if c.destroyed || !c.mode.Editing() || c.status != StatusIdle {
		return nil
	}
	if err := c.draft.Validate(); err != nil {
		return c.Shake()
	}
	c.status = StatusSaving
	var cmd tea.Cmd
	if c.mode == ModeEdit {
		cmd = c.dispatch(Update{ID: c.event.ID, NewData: c.draft.Clone(), Controller: c})
	} else {
		cmd = c.dispatch(AddNewEvent{NewData: c.draft.Clone(), Controller: c})
	}
	if cmd == nil {
		c.status = StatusIdle
	}
	return cmd
}

// Delete removes a persisted event; on a new event it behaves like Cancel.
func (c *EventController) Delete() tea.Cmd {
	if c.destroyed || c.status != StatusIdle {
		return nil
	}
	switch c.mode {
	case ModeEdit:
		c.status = StatusDeleting
		cmd := c.dispatch(Delete{ID: c.event.ID, Controller: c})
		if cmd == nil {
			c.status = StatusIdle
		}
		return cmd
	case ModeAdd, ModeFirst:
		return c.Cancel()
	}
	return nil
}

// ToggleFavourite flips the favourite flag. Persisted events go through
// persistence; a new event only changes its draft.
func (c *EventController) ToggleFavourite() tea.Cmd {
	if c.destroyed || !c.mode.Editing() {
		return nil
	}
	if c.mode != ModeEdit {
		c.draft.IsFavourite = !c.draft.IsFavourite
		return nil
	}
	data := c.event.Clone()
	data.IsFavourite = !data.IsFavourite
	return c.dispatch(AddToFavorite{ID: c.event.ID, NewData: data, Controller: c})
}

// SetType changes the draft type and loads its offer catalog.
func (c *EventController) SetType(t event.Type) {
	if !c.editable() || c.draft.Type == t {
		return
	}
	c.draft.Type = t
	c.draft.CheckedOffers = nil
	if c.offers != nil {
		c.draft.Offers = c.offers.For(t)
	} else {
		c.draft.Offers = nil
	}
}

// SetDestination picks a destination by name; unknown names keep only the name.
func (c *EventController) SetDestination(name string) {
	if !c.editable() {
		return
	}
	if c.destinations != nil {
		if dest, ok := c.destinations.Lookup(name); ok {
			c.draft.Destination = dest
			return
		}
	}
	c.draft.Destination = event.Destination{Name: name}
}

func (c *EventController) SetStart(t time.Time) {
	if c.editable() {
		c.draft.Start = event.At(t)
	}
}

func (c *EventController) SetEnd(t time.Time) {
	if c.editable() {
		c.draft.End = event.At(t)
	}
}

func (c *EventController) SetBasePrice(price int) {
	if c.editable() {
		c.draft.BasePrice = price
	}
}

// ToggleOffer checks or unchecks the offer with id.
func (c *EventController) ToggleOffer(id string) {
	if !c.editable() {
		return
	}
	for i, o := range c.draft.CheckedOffers {
		if o.ID == id {
			c.draft.CheckedOffers = append(c.draft.CheckedOffers[:i:i], c.draft.CheckedOffers[i+1:]...)
			return
		}
	}
	for _, o := range c.draft.Offers {
		if o.ID == id {
			c.draft.CheckedOffers = append(c.draft.CheckedOffers, o)
			return
		}
	}
}

func (c *EventController) editable() bool {
	return !c.destroyed && c.mode.Editing() && c.status == StatusIdle && c.draft != nil
}

// Key identifies the controller instance for the view layer.
func (c *EventController) Key() string {
	return fmt.Sprintf("event-%d", c.key)
}

// Event is the persisted event this controller renders (blank for a new one).
func (c *EventController) Event() *event.Event { return c.event }

// Draft is the form state; equal to Event outside of edit.
func (c *EventController) Draft() *event.Event { return c.draft }

// Mode is the current view mode.
func (c *EventController) Mode() Mode { return c.mode }

// Status reports whether a save or delete is in flight.
func (c *EventController) Status() Status { return c.status }

// Shaking is true until the latest shake completes.
func (c *EventController) Shaking() bool { return c.shaking }

// Shakes counts the failure cues played so far.
func (c *EventController) Shakes() int { return c.shakes }

// Destroyed reports whether the controller has been released.
func (c *EventController) Destroyed() bool { return c.destroyed }

// IsNew reports whether the controller renders an event not yet persisted.
func (c *EventController) IsNew() bool { return c.mode == ModeAdd || c.mode == ModeFirst }

// DestinationNames lists the catalog for the destination picker.
func (c *EventController) DestinationNames() []string {
	if c.destinations == nil {
		return nil
	}
	return c.destinations.Names()
}
