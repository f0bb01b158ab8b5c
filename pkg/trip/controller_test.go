package trip

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/viewmodel"
)

var errRejected = errors.New("persistence: rejected")

type fakeClient struct {
	mu    sync.Mutex
	err   error
	next  int
	calls []string
}

func (f *fakeClient) CreateTripEvent(_ context.Context, ev *event.Event) (*event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create")
	if f.err != nil {
		return nil, f.err
	}
	f.next++
	cp := ev.Clone()
	cp.ID = fmt.Sprintf("new-%d", f.next)
	return cp, nil
}

func (f *fakeClient) UpdateTripEvent(_ context.Context, id string, ev *event.Event) (*event.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update:"+id)
	if f.err != nil {
		return nil, f.err
	}
	cp := ev.Clone()
	cp.ID = id
	return cp, nil
}

func (f *fakeClient) DeleteTripEvent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete:"+id)
	return f.err
}

type fakeButton struct {
	disabled bool
}

func (b *fakeButton) SetDisabled(disabled bool) { b.disabled = disabled }

func at(day, hour int) time.Time {
	return time.Date(2026, time.March, day, hour, 0, 0, 0, time.UTC)
}

func tripEvent(id string, start time.Time, price int) *event.Event {
	return &event.Event{
		ID:          id,
		Type:        event.Taxi,
		Destination: event.Destination{Name: "Geneva"},
		Start:       event.At(start),
		End:         event.At(start.Add(time.Hour)),
		BasePrice:   price,
	}
}

type fixture struct {
	store  *model.TripEvents
	client *fakeClient
	button *fakeButton
	c      *Controller
}

func newFixture(events ...*event.Event) *fixture {
	store := model.NewTripEvents(model.WithClock(func() time.Time { return at(1, 0) }))
	store.SetEvents(events)
	client := &fakeClient{}
	button := &fakeButton{}
	c := New(store, client,
		model.NewDestinations([]event.Destination{{Name: "Geneva", Description: "lake"}, {Name: "Oslo"}}),
		model.NewOffers(map[event.Type][]event.Offer{event.Flight: {{ID: "meal", Title: "Meal", Price: 10}}}),
		WithLocation(time.UTC),
		WithNewEventButton(button),
		WithClock(func() time.Time { return at(20, 10) }),
	)
	return &fixture{store: store, client: client, button: button, c: c}
}

// resolve runs a persistence command synchronously and feeds its result back.
func (f *fixture) resolve(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a persistence command")
	}
	return f.c.Update(cmd())
}

func (f *fixture) item(t *testing.T, id string) *EventController {
	t.Helper()
	for _, ec := range f.c.Board().Items() {
		if ec.Event() != nil && ec.Event().ID == id {
			return ec
		}
	}
	t.Fatalf("no controller for %q", id)
	return nil
}

func (f *fixture) editing() int {
	n := 0
	for _, ec := range f.c.Board().Items() {
		if !ec.Destroyed() && ec.Mode().Editing() {
			n++
		}
	}
	return n
}

func snapshot(store *model.TripEvents) []*event.Event {
	var out []*event.Event
	for _, e := range store.GetAll() {
		out = append(out, e.Clone())
	}
	return out
}

func sameSnapshot(a, b []*event.Event) bool {
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

func dayIDs(d Day) []string {
	var out []string
	for _, ec := range d.Items {
		out = append(out, ec.Event().ID)
	}
	return out
}

func TestRenderGroupsByDay(t *testing.T) {
	f := newFixture(
		tripEvent("C", at(19, 8), 10),
		tripEvent("B", at(18, 14), 10),
		tripEvent("A", at(18, 9), 10),
	)
	f.c.Render()

	b := f.c.Board()
	if !b.Mounted || !b.Grouped || b.Message != "" {
		t.Fatalf("expected mounted grouped board, got %+v", b)
	}
	if len(b.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(b.Days))
	}
	if got := fmt.Sprint(dayIDs(b.Days[0])); got != "[A B]" {
		t.Fatalf("day 1: %s", got)
	}
	if got := fmt.Sprint(dayIDs(b.Days[1])); got != "[C]" {
		t.Fatalf("day 2: %s", got)
	}
	if b.Sort != viewmodel.SortEvent {
		t.Fatalf("expected default sort, got %q", b.Sort)
	}
}

func TestRenderEmptyShowsPlaceholder(t *testing.T) {
	f := newFixture()
	f.c.Render()
	b := f.c.Board()
	if b.Message != MessageNoEvents || b.Mounted || len(b.Days) != 0 {
		t.Fatalf("expected empty placeholder, got %+v", b)
	}
}

func TestDeleteLastEventShowsPlaceholder(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()

	a := f.item(t, "A")
	a.OpenEdit()
	cmd := a.Delete()
	if a.Status() != StatusDeleting {
		t.Fatalf("expected deleting status")
	}
	f.resolve(t, cmd)

	if !f.store.IsEmpty() {
		t.Fatalf("expected empty store")
	}
	b := f.c.Board()
	if b.Message != MessageNoEvents || b.Mounted {
		t.Fatalf("expected placeholder, got %+v", b)
	}
	if !a.Destroyed() {
		t.Fatalf("expected item controller destroyed")
	}
}

func TestDeleteRerendersRemainingEvents(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10), tripEvent("B", at(19, 9), 10))
	f.c.Render()

	b := f.item(t, "B")
	b.OpenEdit()
	f.resolve(t, b.Delete())

	board := f.c.Board()
	if len(board.Days) != 1 || fmt.Sprint(dayIDs(board.Days[0])) != "[A]" {
		t.Fatalf("unexpected board after delete %+v", board.Days)
	}
}

func TestUpdateRejectedKeepsStoreAndShakes(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10), tripEvent("B", at(19, 9), 20))
	f.c.Render()
	before := snapshot(f.store)

	a := f.item(t, "A")
	a.OpenEdit()
	a.SetBasePrice(999)
	f.client.err = errRejected
	if cmd := f.resolve(t, a.Save()); cmd == nil {
		t.Fatalf("expected shake timer command")
	}

	if !sameSnapshot(before, snapshot(f.store)) {
		t.Fatalf("store changed after rejection")
	}
	if a.Shakes() != 1 || !a.Shaking() {
		t.Fatalf("expected exactly one shake, got %d", a.Shakes())
	}
	if a.Mode() != ModeEdit || a.Status() != StatusIdle {
		t.Fatalf("expected edit form to stay open and enabled, got %v/%v", a.Mode(), a.Status())
	}
	if a.Draft().BasePrice != 999 {
		t.Fatalf("expected unsaved input kept, got %d", a.Draft().BasePrice)
	}
	if a.Destroyed() {
		t.Fatalf("failed update must not re-render")
	}
}

func TestUpdateSucceedsAndRerenders(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10), tripEvent("B", at(19, 9), 20))
	f.c.Render()
	otherBefore, _ := f.store.Find("B")
	otherCopy := otherBefore.Clone()

	a := f.item(t, "A")
	a.OpenEdit()
	a.SetBasePrice(55)
	a.SetStart(at(20, 9))
	a.SetEnd(at(20, 10))
	f.resolve(t, a.Save())

	got, ok := f.store.Find("A")
	if !ok || got.BasePrice != 55 || !got.Start.Equal(at(20, 9)) {
		t.Fatalf("expected new data stored, got %+v", got)
	}
	if other, _ := f.store.Find("B"); !other.Equal(otherCopy) {
		t.Fatalf("unrelated event altered: %+v", other)
	}
	if !a.Destroyed() {
		t.Fatalf("expected full re-render")
	}
	board := f.c.Board()
	if len(board.Days) != 2 || fmt.Sprint(dayIDs(board.Days[1])) != "[A]" {
		t.Fatalf("expected A regrouped onto its new day, got %+v", board.Days)
	}
	if f.editing() != 0 {
		t.Fatalf("expected no open form after save")
	}
}

func TestDeleteRejectedKeepsStoreAndShakes(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()
	before := snapshot(f.store)

	a := f.item(t, "A")
	a.OpenEdit()
	f.client.err = errRejected
	f.resolve(t, a.Delete())

	if !sameSnapshot(before, snapshot(f.store)) {
		t.Fatalf("store changed after rejection")
	}
	if a.Shakes() != 1 || a.Mode() != ModeEdit {
		t.Fatalf("expected one shake in edit mode, got %d %v", a.Shakes(), a.Mode())
	}
}

func TestFirstEventTakesFirstRenderPath(t *testing.T) {
	f := newFixture()
	f.c.Render()
	if f.c.FirstRenders() != 0 {
		t.Fatalf("empty render must not build the board")
	}

	f.c.CreateEvent()
	b := f.c.Board()
	if b.NewEvent == nil || b.NewEvent.Mode() != ModeFirst || b.Message != "" {
		t.Fatalf("expected first-event form as sole content, got %+v", b)
	}
	if !f.button.disabled {
		t.Fatalf("expected new event button disabled")
	}

	ne := b.NewEvent
	ne.SetDestination("Geneva")
	if ne.Draft().Destination.Description != "lake" {
		t.Fatalf("expected destination looked up, got %+v", ne.Draft().Destination)
	}
	ne.SetEnd(at(20, 12))
	f.resolve(t, ne.Save())

	if f.store.Len() != 1 {
		t.Fatalf("expected event stored")
	}
	b = f.c.Board()
	if f.c.FirstRenders() != 1 || !b.Mounted || b.Sort != viewmodel.SortEvent {
		t.Fatalf("expected first render path, got renders=%d board=%+v", f.c.FirstRenders(), b)
	}
	if b.NewEvent != nil || !ne.Destroyed() {
		t.Fatalf("expected new event form removed")
	}
	if f.button.disabled {
		t.Fatalf("expected button re-enabled")
	}
	if len(b.Days) != 1 || len(b.Days[0].Items) != 1 {
		t.Fatalf("expected one day with the new event, got %+v", b.Days)
	}
}

func TestAddNewEventToExistingBoard(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()

	f.c.CreateEvent()
	ne := f.c.Board().NewEvent
	if ne.Mode() != ModeAdd {
		t.Fatalf("expected add mode, got %v", ne.Mode())
	}
	ne.SetDestination("Oslo")
	ne.SetType(event.Flight)
	ne.ToggleOffer("meal")
	ne.SetEnd(at(20, 11))
	f.resolve(t, ne.Save())

	if f.store.Len() != 2 || f.c.FirstRenders() != 1 {
		t.Fatalf("expected incremental re-render, got len=%d renders=%d", f.store.Len(), f.c.FirstRenders())
	}
	if len(f.c.Board().Days) != 2 {
		t.Fatalf("expected two days")
	}
	created, ok := f.store.Find("new-1")
	if !ok || !created.IsChecked("meal") {
		t.Fatalf("expected checked offer persisted, got %+v", created)
	}
}

func TestCreateEventTwiceKeepsOnePending(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()

	f.c.CreateEvent()
	first := f.c.Board().NewEvent
	f.c.CreateEvent()
	if f.c.Board().NewEvent != first || first.Destroyed() {
		t.Fatalf("second CreateEvent must be a no-op")
	}
	if f.editing() != 1 {
		t.Fatalf("expected exactly one open form, got %d", f.editing())
	}
}

func TestCreationInFlightBlocksASecondForm(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()

	f.c.CreateEvent()
	first := f.c.Board().NewEvent
	first.SetDestination("Oslo")
	createFirst := first.Save()
	if createFirst == nil {
		t.Fatalf("expected a create command")
	}

	// Editing another event discards the pending form, not its create call.
	f.item(t, "A").OpenEdit()
	if !first.Destroyed() || f.c.Board().NewEvent != nil {
		t.Fatalf("expected pending form discarded")
	}
	if !f.button.disabled {
		t.Fatalf("button must stay disabled while the create is in flight")
	}
	f.c.CreateEvent()
	if f.c.Board().NewEvent != nil {
		t.Fatalf("CreateEvent must be ignored while a create is in flight")
	}

	f.resolve(t, createFirst)
	if f.store.Len() != 2 || f.button.disabled {
		t.Fatalf("expected event stored and button re-enabled, len=%d disabled=%v", f.store.Len(), f.button.disabled)
	}

	f.c.CreateEvent()
	second := f.c.Board().NewEvent
	if second == nil {
		t.Fatalf("expected a new form once the create resolved")
	}
	second.SetDestination("Geneva")
	f.resolve(t, second.Save())
	if f.store.Len() != 3 || fmt.Sprint(f.client.calls) != "[create create]" {
		t.Fatalf("expected exactly two creates, got len=%d calls=%v", f.store.Len(), f.client.calls)
	}
}

func TestLateCreateResultKeepsNewerForm(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()

	f.c.CreateEvent()
	first := f.c.Board().NewEvent
	first.SetDestination("Geneva")
	createFirst := first.Save()
	f.item(t, "A").OpenEdit()

	// Open a second form before the first result arrives; the result of a
	// discarded form must not touch whatever is pending.
	f.c.creating = false
	f.c.CreateEvent()
	second := f.c.Board().NewEvent
	second.SetDestination("Oslo")

	f.resolve(t, createFirst)
	if second.Destroyed() || f.c.Board().NewEvent != second {
		t.Fatalf("expected the newer form to survive the late result")
	}
	if second.Draft().Destination.Name != "Oslo" {
		t.Fatalf("expected unsaved input kept, got %+v", second.Draft().Destination)
	}
}

func TestAddNewEventRejectedKeepsPending(t *testing.T) {
	f := newFixture()
	f.c.Render()
	f.c.CreateEvent()
	ne := f.c.Board().NewEvent
	ne.SetDestination("Oslo")

	f.client.err = errRejected
	f.resolve(t, ne.Save())

	if f.c.Board().NewEvent != ne || ne.Shakes() != 1 || ne.Status() != StatusIdle {
		t.Fatalf("expected pending form kept and shaken")
	}
	if !f.store.IsEmpty() {
		t.Fatalf("store must stay empty")
	}
	if cmd := f.c.Dispatch(AddNewEvent{NewData: ne.Draft(), Controller: ne}); cmd == nil {
		t.Fatalf("pending creation should accept a retry")
	}
}

func TestAddNewEventWithoutPendingIsIgnored(t *testing.T) {
	f := newFixture()
	f.c.Render()
	if cmd := f.c.Dispatch(AddNewEvent{NewData: tripEvent("", at(18, 9), 1)}); cmd != nil {
		t.Fatalf("expected no-op without a pending form")
	}
	if len(f.client.calls) != 0 {
		t.Fatalf("unexpected persistence calls %v", f.client.calls)
	}
}

func TestRemoveNewEventOnEmptyBoardRestoresPlaceholder(t *testing.T) {
	f := newFixture()
	f.c.Render()
	f.c.CreateEvent()
	ne := f.c.Board().NewEvent
	ne.Cancel()

	b := f.c.Board()
	if b.NewEvent != nil || !ne.Destroyed() || b.Message != MessageNoEvents {
		t.Fatalf("expected placeholder back, got %+v", b)
	}
	if f.button.disabled {
		t.Fatalf("expected button re-enabled")
	}
}

func TestSingleEditorInvariant(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10), tripEvent("B", at(18, 10), 10))
	f.c.Render()

	a := f.item(t, "A")
	bItem := f.item(t, "B")

	a.OpenEdit()
	if f.editing() != 1 || f.c.Editor() != a {
		t.Fatalf("expected A to hold the edit token")
	}
	bItem.OpenEdit()
	if f.editing() != 1 || a.Mode() != ModeDefault || f.c.Editor() != bItem {
		t.Fatalf("expected token moved to B")
	}

	f.c.CreateEvent()
	ne := f.c.Board().NewEvent
	if f.editing() != 1 || bItem.Mode() != ModeDefault || f.c.Editor() != ne {
		t.Fatalf("expected new event to hold the token")
	}

	a.OpenEdit()
	if f.editing() != 1 || !ne.Destroyed() || f.c.Board().NewEvent != nil {
		t.Fatalf("opening an edit must cancel the pending creation")
	}
	if f.button.disabled {
		t.Fatalf("expected button re-enabled")
	}
}

func TestFavouriteSuccessRerendersInEdit(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()
	a := f.item(t, "A")
	a.OpenEdit()

	f.resolve(t, a.ToggleFavourite())

	stored, _ := f.store.Find("A")
	if !stored.IsFavourite {
		t.Fatalf("expected favourite stored")
	}
	if a.Mode() != ModeEdit || !a.Event().IsFavourite || a.Destroyed() {
		t.Fatalf("expected item re-rendered in edit with fresh data")
	}
}

func TestFavouriteFailureIsIgnored(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()
	before := snapshot(f.store)
	a := f.item(t, "A")
	a.OpenEdit()

	f.client.err = errRejected
	if cmd := f.resolve(t, a.ToggleFavourite()); cmd != nil {
		t.Fatalf("favourite failure must not shake")
	}
	if !sameSnapshot(before, snapshot(f.store)) || a.Shakes() != 0 || a.Mode() != ModeEdit {
		t.Fatalf("expected nothing to change")
	}
}

func TestFavouriteAfterLosingTokenStaysClosed(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10), tripEvent("B", at(18, 10), 10))
	f.c.Render()
	a := f.item(t, "A")
	a.OpenEdit()
	cmd := a.ToggleFavourite()
	f.item(t, "B").OpenEdit()

	f.resolve(t, cmd)
	if a.Mode() != ModeDefault || f.editing() != 1 {
		t.Fatalf("late favourite result must not reopen A")
	}
}

func TestFavouriteAfterRerenderShowsStoredData(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()
	a := f.item(t, "A")
	a.OpenEdit()
	cmd := a.ToggleFavourite()

	f.store.SetFilter(model.FilterEverything)
	if !a.Destroyed() {
		t.Fatalf("expected filter change to rebuild the board")
	}

	f.resolve(t, cmd)
	stored, _ := f.store.Find("A")
	if !stored.IsFavourite || !f.item(t, "A").Event().IsFavourite {
		t.Fatalf("board must show the stored favourite")
	}
}

func TestDispatchNilIsIgnored(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.Render()
	if cmd := f.c.Dispatch(nil); cmd != nil {
		t.Fatalf("expected no command for a nil action")
	}
}

func TestSortChangeAndFilterReset(t *testing.T) {
	f := newFixture(
		tripEvent("cheap", at(18, 9), 10),
		tripEvent("pricey", at(19, 9), 100),
	)
	f.c.Render()

	f.c.SetSortType(viewmodel.SortPrice)
	b := f.c.Board()
	if b.Grouped || len(b.Days) != 1 || fmt.Sprint(dayIDs(b.Days[0])) != "[pricey cheap]" {
		t.Fatalf("expected flat price order, got %+v", b.Days)
	}

	f.store.SetFilter(model.FilterFuture)
	b = f.c.Board()
	if b.Sort != viewmodel.SortEvent || !b.Grouped {
		t.Fatalf("filter change must reset sort, got %q", b.Sort)
	}
}

func TestPendingNewEventForcesDefaultLayout(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10), tripEvent("B", at(19, 9), 100))
	f.c.Render()
	f.c.CreateEvent()

	f.c.SetSortType(viewmodel.SortPrice)
	if b := f.c.Board(); !b.Grouped || b.NewEvent == nil {
		t.Fatalf("expected grouped layout while creating, got %+v", b)
	}
}

func TestServerSync(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))

	f.store.Sync([]*event.Event{tripEvent("A", at(18, 9), 10), tripEvent("B", at(19, 9), 10)})
	if f.c.Board().Mounted {
		t.Fatalf("sync before the first render must not render")
	}

	f.c.Render()
	f.c.CreateEvent()
	ne := f.c.Board().NewEvent

	f.store.Sync([]*event.Event{tripEvent("A", at(18, 9), 10)})
	b := f.c.Board()
	if b.NewEvent != nil || !ne.Destroyed() {
		t.Fatalf("sync must cancel the pending creation")
	}
	if len(b.Items()) != 1 {
		t.Fatalf("expected re-render from synced data, got %d items", len(b.Items()))
	}

	f.store.Sync(nil)
	if b := f.c.Board(); b.Mounted || b.Message != MessageNoEvents {
		t.Fatalf("expected placeholder after sync emptied the store, got %+v", b)
	}
	f.store.Sync([]*event.Event{tripEvent("C", at(21, 9), 10)})
	if b := f.c.Board(); !b.Mounted || len(b.Items()) != 1 {
		t.Fatalf("expected board rebuilt after sync refilled the store, got %+v", b)
	}
}

func TestHideShowAndMessages(t *testing.T) {
	f := newFixture(tripEvent("A", at(18, 9), 10))
	f.c.ShowLoadingMessage()
	if f.c.Board().Message != MessageLoading {
		t.Fatalf("expected loading message")
	}
	f.c.ShowErrorMessage()
	if f.c.Board().Message != MessageError {
		t.Fatalf("expected error message")
	}
	f.c.Render()
	if f.c.Board().Message != "" {
		t.Fatalf("render must clear the status message")
	}
	f.c.Hide()
	if !f.c.Board().Hidden {
		t.Fatalf("expected hidden")
	}
	f.c.Show()
	if f.c.Board().Hidden || len(f.c.Board().Items()) != 1 {
		t.Fatalf("show must keep state")
	}
}
