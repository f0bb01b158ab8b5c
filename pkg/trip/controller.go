// Package trip orchestrates the trip board: it renders day-grouped or sorted
// events through per-event controllers, keeps a single edit form open at a
// time and turns user intents into persistence calls whose results are
// reconciled into the collection store.
package trip

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/viewmodel"
)

// Store is the collection store the controller reads and mutates.
type Store interface {
	GetAll() []*event.Event
	Get() []*event.Event
	IsEmpty() bool
	Add(e *event.Event)
	Update(id string, e *event.Event) bool
	DeleteEvent(id string) bool
	AddFilterChangeHandler(h model.Handler)
	AddServerSyncHandler(h model.Handler)
}

// Client is the persistence service.
type Client interface {
	CreateTripEvent(ctx context.Context, ev *event.Event) (*event.Event, error)
	UpdateTripEvent(ctx context.Context, id string, ev *event.Event) (*event.Event, error)
	DeleteTripEvent(ctx context.Context, id string) error
}

// NewEventButton is the host's "New event" button, disabled while a
// creation form is open.
type NewEventButton interface {
	SetDisabled(disabled bool)
}

// Option customises a Controller.
type Option func(*Controller)

// WithLocation sets the zone used to split events into days.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithContext sets the parent context of persistence calls.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithCallTimeout bounds every persistence call.
func WithCallTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.timeout = d
	}
}

// WithNewEventButton wires the host's "New event" button.
func WithNewEventButton(b NewEventButton) Option {
	return func(c *Controller) {
		c.button = b
	}
}

// WithClock overrides the clock used to prefill new events.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// Controller is the list controller of the trip board.
type Controller struct {
	store        Store
	client       Client
	destinations Destinations
	offers       Offers
	button       NewEventButton

	ctx     context.Context
	timeout time.Duration
	loc     *time.Location
	now     func() time.Time

	ready   bool
	mounted bool
	hidden  bool
	message Message

	sortType viewmodel.SortType
	grouped  bool
	days     []Day
	showed   []*EventController
	newEvent *EventController
	// creating is set while a create call is in flight, even if its form
	// has been discarded meanwhile.
	creating bool

	// editor holds the edit token: the only controller allowed in a form.
	editor *EventController

	keys         int
	firstRenders int
}

// New creates a controller and subscribes it to the store notifications.
func New(store Store, client Client, destinations Destinations, offers Offers, opts ...Option) *Controller {
	c := &Controller{
		store:        store,
		client:       client,
		destinations: destinations,
		offers:       offers,
		ctx:          context.Background(),
		loc:          time.Local,
		now:          time.Now,
		sortType:     viewmodel.SortEvent,
	}
	for _, opt := range opts {
		opt(c)
	}
	store.AddFilterChangeHandler(c.filterChangeHandler)
	store.AddServerSyncHandler(c.serverSyncHandler)
	return c
}

// Render performs the initial render.
func (c *Controller) Render() {
	c.ready = true
	if c.store.IsEmpty() {
		c.renderMessage(MessageNoEvents)
		return
	}
	c.renderFirstBoard()
}

// CreateEvent opens the new event form. A second call while one is pending
// or while a creation is still being persisted is ignored.
func (c *Controller) CreateEvent() {
	if c.newEvent != nil || c.creating {
		return
	}
	if c.store.IsEmpty() {
		c.removeMessage()
		c.renderNewEvent(ModeFirst)
	} else {
		c.setDefaultViews(nil)
		c.renderNewEvent(ModeAdd)
	}
	if c.button != nil {
		c.button.SetDisabled(true)
	}
}

// Hide hides the whole board without dropping its state.
func (c *Controller) Hide() { c.hidden = true }

// Show reveals a hidden board.
func (c *Controller) Show() { c.hidden = false }

// ShowLoadingMessage replaces the list with the loading placeholder.
func (c *Controller) ShowLoadingMessage() { c.renderMessage(MessageLoading) }

// ShowErrorMessage replaces the list with the load failure placeholder.
func (c *Controller) ShowErrorMessage() { c.renderMessage(MessageError) }

// SetSortType is the sort bar change handler.
func (c *Controller) SetSortType(t viewmodel.SortType) {
	if !c.mounted {
		return
	}
	c.sortType = t
	c.updateEvents()
}

// SortType is the active sort of the sort bar.
func (c *Controller) SortType() viewmodel.SortType { return c.sortType }

// Editor returns the controller currently holding an open form, if any.
func (c *Controller) Editor() *EventController {
	if c.editor == nil || c.editor.Destroyed() || !c.editor.Mode().Editing() {
		return nil
	}
	return c.editor
}

// FirstRenders counts how many times the sort bar and day list were built
// from scratch.
func (c *Controller) FirstRenders() int { return c.firstRenders }

// Board snapshots the current view.
func (c *Controller) Board() Board {
	b := Board{
		Hidden:   c.hidden,
		Message:  c.message,
		NewEvent: c.newEvent,
		Mounted:  c.mounted,
	}
	if c.mounted {
		b.Sort = c.sortType
		b.Grouped = c.grouped
		b.Days = append([]Day(nil), c.days...)
	}
	return b
}

// Dispatch is the only mutation entry point. Persistence-backed actions
// return a command whose result must be fed back through Update.
func (c *Controller) Dispatch(a Action) tea.Cmd {
	if a == nil {
		return nil
	}
	switch a := a.(type) {
	case AddToFavorite:
		if !c.exists(a.ID) || a.NewData == nil {
			return nil
		}
		data := a.NewData.Clone()
		return c.call(func(ctx context.Context) tea.Msg {
			ev, err := c.client.UpdateTripEvent(ctx, a.ID, data)
			return favoriteResultMsg{action: a, event: ev, err: err}
		})
	case Update:
		if !c.exists(a.ID) || a.NewData == nil {
			return nil
		}
		data := a.NewData.Clone()
		return c.call(func(ctx context.Context) tea.Msg {
			ev, err := c.client.UpdateTripEvent(ctx, a.ID, data)
			return updateResultMsg{action: a, event: ev, err: err}
		})
	case Delete:
		if !c.exists(a.ID) {
			return nil
		}
		return c.call(func(ctx context.Context) tea.Msg {
			err := c.client.DeleteTripEvent(ctx, a.ID)
			return deleteResultMsg{action: a, err: err}
		})
	case AddNewEvent:
		if c.newEvent == nil || c.creating || a.Controller != c.newEvent || a.NewData == nil {
			return nil
		}
		c.creating = true
		data := a.NewData.Clone()
		return c.call(func(ctx context.Context) tea.Msg {
			ev, err := c.client.CreateTripEvent(ctx, data)
			return createResultMsg{action: a, event: ev, err: err}
		})
	case RemoveNewEvent:
		c.handleRemoveNewEvent()
		return nil
	case ToEdit:
		c.handleToEdit(a.Controller)
		return nil
	default:
		panic(fmt.Sprintf("trip: unhandled action %T", a))
	}
}

// Update applies persistence results and shake completions. Other messages
// are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case favoriteResultMsg:
		c.handleAddToFavoriteResult(msg)
	case updateResultMsg:
		return c.handleUpdateResult(msg)
	case deleteResultMsg:
		return c.handleDeleteResult(msg)
	case createResultMsg:
		return c.handleAddNewEventResult(msg)
	case ShakeDoneMsg:
		if msg.Controller != nil {
			msg.Controller.shakeDone(msg.seq)
		}
	}
	return nil
}

func (c *Controller) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	parent, timeout := c.ctx, c.timeout
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}
		return fn(ctx)
	}
}

// Favourites are best effort: a failure leaves everything as it was.
func (c *Controller) handleAddToFavoriteResult(msg favoriteResultMsg) {
	if msg.err != nil || msg.event == nil {
		return
	}
	ec := msg.action.Controller
	if !c.store.Update(msg.action.ID, msg.event) {
		return
	}
	// A re-render while the call was in flight replaced ec.
	if ec == nil || !c.onBoard(ec) {
		c.updateEvents()
		return
	}
	// The form may have lost the edit token while the call was in flight.
	mode := ModeDefault
	if c.Editor() == ec {
		mode = ModeEdit
	}
	ec.Render(msg.event, mode)
}

func (c *Controller) handleUpdateResult(msg updateResultMsg) tea.Cmd {
	if msg.err != nil || msg.event == nil {
		return c.shake(msg.action.Controller)
	}
	// An id that vanished meanwhile still gets a re-render so the saving form
	// does not linger.
	c.store.Update(msg.action.ID, msg.event)
	c.updateEvents()
	return nil
}

func (c *Controller) handleDeleteResult(msg deleteResultMsg) tea.Cmd {
	if msg.err != nil {
		return c.shake(msg.action.Controller)
	}
	c.store.DeleteEvent(msg.action.ID)
	if c.store.IsEmpty() {
		c.removeFirstBoard()
		return nil
	}
	c.updateEvents()
	return nil
}

func (c *Controller) handleAddNewEventResult(msg createResultMsg) tea.Cmd {
	c.creating = false
	if c.newEvent == nil && c.button != nil {
		c.button.SetDisabled(false)
	}
	if msg.err != nil || msg.event == nil {
		return c.shake(msg.action.Controller)
	}
	c.store.Add(msg.event)
	if msg.action.Controller == c.newEvent {
		c.removeNewEvent()
	}

	if len(c.store.GetAll()) == 1 {
		c.renderFirstBoard()
		return nil
	}
	c.updateEvents()
	return nil
}

func (c *Controller) handleRemoveNewEvent() {
	c.removeNewEvent()
	if c.store.IsEmpty() {
		c.renderMessage(MessageNoEvents)
	}
}

// handleToEdit transfers the edit token to next: every other form closes and
// a pending new event is discarded.
func (c *Controller) handleToEdit(next *EventController) {
	c.setDefaultViews(next)
	c.removeNewEvent()
	c.editor = next
}

func (c *Controller) shake(ec *EventController) tea.Cmd {
	if ec == nil {
		return nil
	}
	return ec.Shake()
}

func (c *Controller) onBoard(ec *EventController) bool {
	if ec.Destroyed() {
		return false
	}
	for _, shown := range c.showed {
		if shown == ec {
			return true
		}
	}
	return false
}

func (c *Controller) exists(id string) bool {
	if id == "" {
		return false
	}
	for _, e := range c.store.GetAll() {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (c *Controller) filterChangeHandler() {
	c.sortType = viewmodel.SortEvent
	c.updateEvents()
}

func (c *Controller) serverSyncHandler() {
	if !c.ready {
		return
	}
	c.removeNewEvent()
	c.updateEvents()
}

func (c *Controller) renderFirstBoard() {
	c.removeMessage()
	c.removeEvents()
	c.mounted = true
	c.sortType = viewmodel.SortEvent
	c.firstRenders++
	c.renderEvents(c.sortType)
}

func (c *Controller) removeFirstBoard() {
	c.removeEvents()
	c.removeNewEvent()
	c.mounted = false
	c.renderMessage(MessageNoEvents)
}

// updateEvents rebuilds every event controller from the store. A pending new
// event forces the default, day-grouped layout.
func (c *Controller) updateEvents() {
	if !c.mounted {
		if c.ready && c.newEvent == nil && !c.store.IsEmpty() {
			c.renderFirstBoard()
		}
		return
	}
	if c.newEvent == nil && c.store.IsEmpty() {
		c.removeFirstBoard()
		return
	}
	sortType := c.sortType
	if c.newEvent != nil {
		sortType = viewmodel.SortEvent
	}
	c.removeEvents()
	c.renderEvents(sortType)
}

func (c *Controller) renderEvents(sortType viewmodel.SortType) {
	layout := viewmodel.Arrange(c.store.Get(), sortType, c.loc)
	c.grouped = layout.Grouped
	c.days = make([]Day, 0, len(layout.Days))
	for _, group := range layout.Days {
		day := Day{Date: group.Date, Counter: group.Counter}
		for _, ev := range group.Events {
			ec := c.newController()
			ec.Render(ev, ModeDefault)
			day.Items = append(day.Items, ec)
			c.showed = append(c.showed, ec)
		}
		c.days = append(c.days, day)
	}
}

func (c *Controller) renderNewEvent(mode Mode) {
	ec := c.newController()
	blank := event.New(c.now().In(c.loc).Truncate(time.Minute))
	if c.offers != nil {
		blank.Offers = c.offers.For(blank.Type)
	}
	ec.Render(blank, mode)
	c.newEvent = ec
	c.editor = ec
}

func (c *Controller) newController() *EventController {
	c.keys++
	return newEventController(c.keys, c.Dispatch, c.destinations, c.offers)
}

func (c *Controller) renderMessage(m Message) {
	c.message = m
}

func (c *Controller) removeMessage() {
	c.message = ""
}

func (c *Controller) removeNewEvent() {
	if c.newEvent == nil {
		return
	}
	c.newEvent.Destroy()
	if c.editor == c.newEvent {
		c.editor = nil
	}
	c.newEvent = nil
	if c.button != nil && !c.creating {
		c.button.SetDisabled(false)
	}
}

func (c *Controller) removeEvents() {
	for _, ec := range c.showed {
		ec.Destroy()
		if c.editor == ec {
			c.editor = nil
		}
	}
	c.showed = nil
	c.days = nil
}

// setDefaultViews closes every open form except keep's.
func (c *Controller) setDefaultViews(keep *EventController) {
	for _, ec := range c.showed {
		if ec != keep {
			ec.SetDefaultView()
		}
	}
	if c.editor != keep && c.editor != c.newEvent {
		c.editor = nil
	}
}
