// Package form renders the edit form of one trip event and turns key presses
// into gestures on its event controller.
package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/trip"
	"tableflip.dev/trip/pkg/tui/theme"
)

// TimeLayout is how start and end are typed.
const TimeLayout = "2006-01-02 15:04"

type field int

const (
	fieldType field = iota
	fieldDestination
	fieldStart
	fieldEnd
	fieldPrice
	fieldOffers
	fieldCount
)

var labels = [...]string{"Type", "Destination", "Start", "End", "Price €", "Offers"}

// Model is the form bound to a single EventController.
type Model struct {
	ec    *trip.EventController
	seen  *event.Event
	loc   *time.Location
	theme theme.Theme
	width int

	focus       field
	offerCursor int
	inputs      map[field]*textinput.Model
	invalid     map[field]string
}

// New binds a form to ec.
func New(ec *trip.EventController, loc *time.Location, th theme.Theme) *Model {
	if loc == nil {
		loc = time.Local
	}
	m := &Model{
		ec:     ec,
		loc:    loc,
		theme:  th,
		width:  60,
		focus:  fieldDestination,
		inputs: make(map[field]*textinput.Model),
	}
	for _, f := range []field{fieldDestination, fieldStart, fieldEnd, fieldPrice} {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		m.inputs[f] = &ti
	}
	m.inputs[fieldStart].Placeholder = TimeLayout
	m.inputs[fieldEnd].Placeholder = TimeLayout
	m.reset()
	return m
}

// Controller is the event controller the form drives.
func (m *Model) Controller() *trip.EventController { return m.ec }

// SetWidth bounds the rendered form.
func (m *Model) SetWidth(w int) {
	if w < 30 {
		w = 30
	}
	m.width = w
	for _, ti := range m.inputs {
		ti.SetWidth(w - 20)
	}
}

// Sync reloads the inputs when the controller was re-rendered with new data.
func (m *Model) Sync() {
	if m.ec.Event() != m.seen {
		m.reset()
	}
}

func (m *Model) reset() {
	m.seen = m.ec.Event()
	m.invalid = make(map[field]string)
	d := m.ec.Draft()
	if d == nil {
		return
	}
	m.inputs[fieldDestination].SetValue(d.Destination.Name)
	m.inputs[fieldStart].SetValue(formatTime(d.Start, m.loc))
	m.inputs[fieldEnd].SetValue(formatTime(d.End, m.loc))
	m.inputs[fieldPrice].SetValue(strconv.Itoa(d.BasePrice))
	m.focusInput()
}

func formatTime(ts event.Timestamp, loc *time.Location) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(loc).Format(TimeLayout)
}

// Focus returns the cursor blink command of the focused input.
func (m *Model) Focus() tea.Cmd {
	return m.focusInput()
}

func (m *Model) focusInput() tea.Cmd {
	var cmd tea.Cmd
	for f, ti := range m.inputs {
		if f == m.focus {
			cmd = ti.Focus()
		} else {
			ti.Blur()
		}
	}
	return cmd
}

// Update handles a key press. Gestures that reach persistence return the
// controller's command.
func (m *Model) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return m.ec.Cancel()
	case "ctrl+s", "enter":
		if len(m.invalid) > 0 {
			return m.ec.Shake()
		}
		return m.ec.Save()
	case "ctrl+d":
		return m.ec.Delete()
	case "ctrl+f":
		return m.ec.ToggleFavourite()
	case "tab", "down":
		if m.focus == fieldOffers && msg.String() == "down" {
			m.moveOffer(1)
			return nil
		}
		m.focus = (m.focus + 1) % fieldCount
		return m.focusInput()
	case "shift+tab", "up":
		if m.focus == fieldOffers && msg.String() == "up" && m.offerCursor > 0 {
			m.moveOffer(-1)
			return nil
		}
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m.focusInput()
	}

	switch m.focus {
	case fieldType:
		switch msg.String() {
		case "left", "h":
			m.cycleType(-1)
		case "right", "l", "space", " ":
			m.cycleType(1)
		}
		return nil
	case fieldOffers:
		switch msg.String() {
		case "space", " ", "x":
			offers := m.ec.Draft().Offers
			if m.offerCursor < len(offers) {
				m.ec.ToggleOffer(offers[m.offerCursor].ID)
			}
		}
		return nil
	case fieldDestination:
		switch msg.String() {
		case "ctrl+n":
			m.cycleDestination(1)
			return nil
		case "ctrl+p":
			m.cycleDestination(-1)
			return nil
		}
	}

	ti := m.inputs[m.focus]
	next, cmd := ti.Update(msg)
	*ti = next
	m.apply(m.focus)
	return cmd
}

func (m *Model) moveOffer(delta int) {
	n := len(m.ec.Draft().Offers)
	if n == 0 {
		return
	}
	m.offerCursor = (m.offerCursor + delta + n) % n
}

func (m *Model) cycleType(delta int) {
	types := event.AllTypes()
	current := 0
	for i, t := range types {
		if t == m.ec.Draft().Type {
			current = i
		}
	}
	m.ec.SetType(types[(current+delta+len(types))%len(types)])
	m.offerCursor = 0
}

func (m *Model) cycleDestination(delta int) {
	names := m.ec.DestinationNames()
	if len(names) == 0 {
		return
	}
	current := -1
	value := m.inputs[fieldDestination].Value()
	for i, name := range names {
		if strings.EqualFold(name, value) {
			current = i
		}
	}
	next := (current + delta + len(names)) % len(names)
	if current < 0 && delta < 0 {
		next = len(names) - 1
	}
	m.inputs[fieldDestination].SetValue(names[next])
	m.apply(fieldDestination)
}

// apply pushes the input of f into the draft. Unparseable input is kept in
// the input and flagged; the draft keeps its last valid value.
func (m *Model) apply(f field) {
	value := strings.TrimSpace(m.inputs[f].Value())
	delete(m.invalid, f)
	switch f {
	case fieldDestination:
		m.ec.SetDestination(value)
	case fieldStart, fieldEnd:
		t, err := time.ParseInLocation(TimeLayout, value, m.loc)
		if err != nil {
			m.invalid[f] = "use " + TimeLayout
			return
		}
		if f == fieldStart {
			m.ec.SetStart(t)
		} else {
			m.ec.SetEnd(t)
		}
	case fieldPrice:
		price, err := strconv.Atoi(value)
		if err != nil || price < 0 {
			m.invalid[f] = "whole euros"
			return
		}
		m.ec.SetBasePrice(price)
	}
}

// View renders the form.
func (m *Model) View() string {
	d := m.ec.Draft()
	if d == nil {
		return ""
	}
	th := m.theme.Form
	var b strings.Builder

	row := func(f field, value string) {
		style := th.Label
		if f == m.focus {
			style = th.FocusLabel
		}
		b.WriteString(style.Render(labels[f]))
		b.WriteString(value)
		if msg, ok := m.invalid[f]; ok {
			b.WriteString(" " + th.Error.Render(msg))
		}
		b.WriteString("\n")
	}

	star := "☆"
	if d.IsFavourite {
		star = "★"
	}
	row(fieldType, fmt.Sprintf("%s %s  %s", d.Type.Emoji(), d.Type.Label(), star))
	row(fieldDestination, m.inputs[fieldDestination].View())
	if desc := d.Destination.Description; desc != "" {
		b.WriteString(th.Description.Render(wordwrap.String(desc, m.width-4)))
		b.WriteString("\n")
	}
	row(fieldStart, m.inputs[fieldStart].View())
	row(fieldEnd, m.inputs[fieldEnd].View()+"  "+timeutil.FormatDuration(d.Duration()))
	row(fieldPrice, m.inputs[fieldPrice].View())

	if len(d.Offers) == 0 {
		row(fieldOffers, "none")
	} else {
		for i, o := range d.Offers {
			box := "[ ]"
			if d.IsChecked(o.ID) {
				box = "[x]"
			}
			line := fmt.Sprintf("%s %s +€ %d", box, o.Title, o.Price)
			if m.focus == fieldOffers && i == m.offerCursor {
				line = th.FocusLabel.UnsetWidth().Render(line)
			}
			if i == 0 {
				row(fieldOffers, line)
			} else {
				b.WriteString(th.Label.Render("") + line + "\n")
			}
		}
	}
	b.WriteString(fmt.Sprintf("Total € %d\n\n", d.TotalPrice()))
	b.WriteString(th.Button.Render(m.buttons()))

	frame := th.Frame
	if m.ec.Shaking() {
		frame = th.Shake
	}
	return frame.Width(m.width).Render(b.String())
}

func (m *Model) buttons() string {
	save := "ctrl+s Save"
	if m.ec.Status() == trip.StatusSaving {
		save = "Saving..."
	}
	reset := "ctrl+d Delete"
	switch {
	case m.ec.IsNew():
		reset = "esc Cancel"
	case m.ec.Status() == trip.StatusDeleting:
		reset = "Deleting..."
	}
	parts := []string{save, reset, "ctrl+f ★"}
	if !m.ec.IsNew() {
		parts = append(parts, "esc Close")
	}
	return strings.Join(parts, "  ·  ")
}
