// Package teaui hosts the Bubble Tea program for the trip board.
package teaui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/logger"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/store"
	"tableflip.dev/trip/pkg/trip"
	"tableflip.dev/trip/pkg/tui/components/form"
	"tableflip.dev/trip/pkg/tui/components/help"
	"tableflip.dev/trip/pkg/tui/theme"
	"tableflip.dev/trip/pkg/viewmodel"
)

// DefaultCallTimeout bounds each persistence call made from the board.
const DefaultCallTimeout = 10 * time.Second

// Options tune the program.
type Options struct {
	Logger      *logger.Logger
	CallTimeout time.Duration
}

// Model is the root Bubble Tea model. It owns the collection store and the
// trip controller and translates key presses into controller gestures.
type Model struct {
	svc   *app.Service
	log   *logger.Logger
	theme theme.Theme
	loc   *time.Location

	ctx    context.Context
	cancel context.CancelFunc

	events       *model.TripEvents
	destinations *model.Destinations
	offers       *model.Offers
	ctrl         *trip.Controller
	button       *newEventButton

	form   *form.Model
	help   *help.Model
	report app.Report

	width        int
	height       int
	cursor       int
	statsVisible bool
	loaded       bool
	status       string

	watchCh     <-chan store.Change
	watchCancel context.CancelFunc
}

type newEventButton struct {
	disabled bool
}

func (b *newEventButton) SetDisabled(disabled bool) { b.disabled = disabled }

type loadedMsg struct {
	events       []*event.Event
	destinations []event.Destination
	offers       map[event.Type][]event.Offer
	report       app.Report
	err          error
}

func (m loadedMsg) Describe() string {
	if m.err != nil {
		return "load failed: " + m.err.Error()
	}
	return fmt.Sprintf("loaded events=%d destinations=%d", len(m.events), len(m.destinations))
}

type watchStartedMsg struct {
	ch     <-chan store.Change
	cancel context.CancelFunc
	err    error
}

func (m watchStartedMsg) Describe() string {
	if m.err != nil {
		return "watch failed: " + m.err.Error()
	}
	return "watch started"
}

type watchEventMsg struct {
	change store.Change
}

func (m watchEventMsg) Describe() string {
	if m.change.Type == store.ChangeCatalog {
		return "catalog changed"
	}
	return "events changed"
}

type watchStoppedMsg struct{}

// New constructs the root model for svc.
func New(svc *app.Service, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	timeout := opts.CallTimeout
	if timeout == 0 {
		timeout = DefaultCallTimeout
	}
	loc := svc.Loc
	if loc == nil {
		loc = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		svc:          svc,
		log:          log.With("component", "tui"),
		theme:        theme.Default(),
		loc:          loc,
		ctx:          ctx,
		cancel:       cancel,
		events:       model.NewTripEvents(model.WithClock(svc.Now)),
		destinations: model.NewDestinations(nil),
		offers:       model.NewOffers(nil),
		button:       &newEventButton{},
	}
	m.ctrl = trip.New(m.events, svc.Persistence, m.destinations, m.offers,
		trip.WithLocation(loc),
		trip.WithContext(ctx),
		trip.WithCallTimeout(timeout),
		trip.WithNewEventButton(m.button),
		trip.WithClock(svc.Now),
	)
	m.ctrl.ShowLoadingMessage()
	return m
}

// Run launches the Bubble Tea program. It returns when the user quits or ctx
// is done.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m := New(svc, opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Close stops the watcher and cancels in-flight persistence calls.
func (m *Model) Close() {
	m.stopWatch()
	m.cancel()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) load() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		all, err := svc.Events(ctx, model.FilterEverything)
		if err != nil {
			return loadedMsg{err: err}
		}
		destinations, err := svc.Persistence.Destinations(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		offers, err := svc.Persistence.Offers(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		report, err := svc.Report(ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{events: all, destinations: destinations, offers: offers, report: report}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if change, ok := <-ch; ok {
			return watchEventMsg{change: change}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form.SetWidth(m.formWidth())
		}
		if m.help != nil {
			m.help.SetSize(m.helpSize())
		}
	case loadedMsg:
		m.applyLoaded(msg)
	case watchStartedMsg:
		if msg.err != nil {
			m.log.Warn("watch unavailable", "err", msg.err)
			break
		}
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		cmds = append(cmds, m.load(), m.waitForWatch())
	case watchStoppedMsg:
		m.watchCh = nil
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	default:
		if cmd := m.ctrl.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if cmd := m.syncForm(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	m.clampCursor()

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applyLoaded(msg loadedMsg) {
	if msg.err != nil {
		m.log.Error("load trip events", "err", msg.err)
		m.status = "ERR: " + msg.err.Error()
		if !m.loaded {
			m.ctrl.ShowErrorMessage()
		}
		return
	}
	m.destinations.Set(msg.destinations)
	m.offers.Set(msg.offers)
	m.report = msg.report
	m.status = ""

	if !m.loaded {
		m.loaded = true
		m.events.SetEvents(msg.events)
		m.ctrl.Render()
		return
	}
	if m.events.Sync(msg.events) {
		m.log.Debug("server sync", "events", len(msg.events))
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.help != nil {
		done, cmd := m.help.Update(msg)
		if done {
			m.help = nil
		}
		return cmd
	}
	if m.form != nil {
		return m.form.Update(msg)
	}
	if msg.String() == "?" {
		m.help = help.New(m.helpSize())
		return nil
	}
	if m.statsVisible {
		switch msg.String() {
		case "s", "esc":
			m.toggleStats()
		case "q":
			return tea.Quit
		}
		return nil
	}
	if !m.loaded {
		if msg.String() == "q" {
			return tea.Quit
		}
		return nil
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		m.cursor++
	case "k", "up":
		m.cursor--
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.ctrl.Board().Items()) - 1
	case "enter", "e":
		if ec := m.selected(); ec != nil {
			return ec.OpenEdit()
		}
	case "n":
		m.ctrl.CreateEvent()
	case "f":
		m.cycleFilter()
	case "1":
		m.ctrl.SetSortType(viewmodel.SortEvent)
	case "2":
		m.ctrl.SetSortType(viewmodel.SortTime)
	case "3":
		m.ctrl.SetSortType(viewmodel.SortPrice)
	case "s":
		m.toggleStats()
	case "r":
		return m.load()
	}
	return nil
}

func (m *Model) selected() *trip.EventController {
	items := m.ctrl.Board().Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return nil
	}
	return items[m.cursor]
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Board().Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) cycleFilter() {
	filters := model.FilterTypes()
	for i, f := range filters {
		if f == m.events.Filter() {
			m.events.SetFilter(filters[(i+1)%len(filters)])
			return
		}
	}
}

func (m *Model) toggleStats() {
	m.statsVisible = !m.statsVisible
	if m.statsVisible {
		m.ctrl.Hide()
	} else {
		m.ctrl.Show()
	}
}

// syncForm keeps the form bound to whichever controller holds the edit token.
func (m *Model) syncForm() tea.Cmd {
	editor := m.ctrl.Editor()
	if editor == nil {
		m.form = nil
		return nil
	}
	if m.form != nil && m.form.Controller() == editor {
		m.form.Sync()
		return nil
	}
	m.form = form.New(editor, m.loc, m.theme)
	m.form.SetWidth(m.formWidth())
	for i, ec := range m.ctrl.Board().Items() {
		if ec == editor {
			m.cursor = i
		}
	}
	return m.form.Focus()
}

func (m *Model) helpSize() (int, int) {
	if m.width <= 0 || m.height <= 0 {
		return 72, 24
	}
	return m.width - 4, m.height - 4
}

func (m *Model) formWidth() int {
	if m.width <= 0 {
		return 60
	}
	return m.width - 6
}

func (m *Model) noteEvent(msg tea.Msg) {
	m.log.Debug("msg", "type", fmt.Sprintf("%T", msg), "detail", describeMsg(msg))
}

func describeMsg(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	default:
		return ""
	}
}
