package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/model"
	"tableflip.dev/trip/pkg/stats"
	"tableflip.dev/trip/pkg/timeutil"
	"tableflip.dev/trip/pkg/trip"
	"tableflip.dev/trip/pkg/tui/components/calendar"
	"tableflip.dev/trip/pkg/viewmodel"
)

const (
	helpBoard   = "j/k move · enter edit · n new · f filter · 1/2/3 sort · s stats · ? help · q quit"
	helpForm    = "tab next field · ←/→ type · ctrl+n/p destination · space offer"
	helpStats   = "s/esc back · ? help · q quit"
	helpOverlay = "j/k scroll · ?/esc close"
)

var (
	barFrom, _ = colorful.Hex("#5A56E0")
	barTo, _   = colorful.Hex("#EE6FF8")
)

// View implements tea.Model.
func (m *Model) View() (string, *tea.Cursor) {
	header := m.viewHeader()
	if m.help != nil {
		footer := m.theme.Footer.Help.Render(helpOverlay)
		return lipgloss.JoinVertical(lipgloss.Left, header, m.help.View(), footer), nil
	}

	var body []string
	focus := 0
	board := m.ctrl.Board()
	if board.Hidden {
		body = m.viewStats()
	} else {
		body, focus = m.viewBoard(board)
	}

	help := helpBoard
	switch {
	case board.Hidden:
		help = helpStats
	case m.form != nil:
		help = helpForm
	}
	footer := m.theme.Footer.Help.Render(help)
	if m.status != "" {
		footer += "  " + m.theme.Footer.Status.Render(m.status)
	}

	if m.height > 0 {
		room := m.height - lipgloss.Height(header) - 1
		body = window(body, focus, room)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, strings.Join(body, "\n"), footer), nil
}

// window keeps at most room lines around focus.
func window(lines []string, focus, room int) []string {
	if room <= 0 || len(lines) <= room {
		return lines
	}
	start := focus - room/3
	if start < 0 {
		start = 0
	}
	if start+room > len(lines) {
		start = len(lines) - room
	}
	return lines[start : start+room]
}

func (m *Model) viewHeader() string {
	th := m.theme.Header
	var top []string
	if info := m.report.Info; info.Title != "" {
		top = append(top,
			th.Title.Render(info.Title),
			th.Dates.Render(info.Dates),
			th.Cost.Render(fmt.Sprintf("Total: € %d", info.Cost)))
	} else {
		top = append(top, th.Title.Render("Trip"))
	}
	button := th.Button.Render("n New event")
	if m.button.disabled {
		button = th.Disabled.Render("n New event")
	}
	top = append(top, button)

	var tabs []string
	for _, f := range model.FilterTypes() {
		style := th.Tab
		if f == m.events.Filter() {
			style = th.ActiveTab
		}
		tabs = append(tabs, style.Render(string(f)))
	}
	board := m.ctrl.Board()
	if board.Mounted && !board.Hidden {
		tabs = append(tabs, "  ")
		for i, s := range viewmodel.SortTypes() {
			style := th.Tab
			if s == board.Sort {
				style = th.ActiveTab
			}
			tabs = append(tabs, style.Render(fmt.Sprintf("%d %s", i+1, s)))
		}
	}
	return strings.Join(top, "  ") + "\n" + strings.Join(tabs, "") + "\n"
}

// viewBoard renders the board and reports the line of the selected item.
func (m *Model) viewBoard(board trip.Board) ([]string, int) {
	th := m.theme.Board
	var lines []string
	focus := 0

	if board.Message != "" {
		lines = append(lines, th.Message.Render(string(board.Message)))
	}
	if board.NewEvent != nil && m.form != nil && m.form.Controller() == board.NewEvent {
		focus = len(lines)
		lines = append(lines, strings.Split(m.form.View(), "\n")...)
	}

	index := 0
	for _, day := range board.Days {
		if board.Grouped {
			title := th.Counter.Render(fmt.Sprintf("%d ", day.Counter)) +
				th.Day.Render(strings.ToUpper(day.Date.Format("Jan 02")))
			lines = append(lines, title)
		}
		for _, ec := range day.Items {
			if index == m.cursor && board.NewEvent == nil {
				focus = len(lines)
			}
			if m.form != nil && m.form.Controller() == ec {
				focus = len(lines)
				lines = append(lines, strings.Split(m.form.View(), "\n")...)
			} else {
				lines = append(lines, m.viewItem(ec, index == m.cursor)...)
			}
			index++
		}
		lines = append(lines, "")
	}
	return lines, focus
}

func (m *Model) viewItem(ec *trip.EventController, selected bool) []string {
	th := m.theme.Board
	e := ec.Event()
	fav := " "
	if e.IsFavourite {
		fav = th.Favourite.Render("★")
	}
	when := fmt.Sprintf("%s — %s", e.Start.In(m.loc).Format("15:04"), e.End.In(m.loc).Format("15:04"))
	row := fmt.Sprintf("%s %-28s %s  %s  %s %s",
		e.Type.Emoji(),
		e.Type.Label()+" "+e.Destination.Name,
		th.Time.Render(when),
		th.Duration.Render(timeutil.FormatDuration(e.Duration())),
		th.Price.Render(fmt.Sprintf("€ %d", e.BasePrice)),
		fav)

	style := th.Item
	if selected {
		style = th.Selected
	}
	lines := []string{style.Render(row)}
	for _, o := range e.CheckedOffers {
		lines = append(lines, th.Offer.Render(fmt.Sprintf("+ %s € %d", o.Title, o.Price)))
	}
	return lines
}

func (m *Model) viewStats() []string {
	th := m.theme.Stats
	width := m.width - 40
	if width < 10 {
		width = 30
	}
	var lines []string
	if all := m.events.GetAll(); len(all) > 0 {
		var selected *event.Event
		if ec := m.selected(); ec != nil {
			selected = ec.Event()
		}
		grid := calendar.Trip(all, selected, m.svc.Clock(), m.loc, calendar.DefaultOptions())
		lines = append(lines, strings.Split(grid, "\n")...)
		lines = append(lines, "")
	}
	for _, chart := range m.report.Stats.Charts() {
		lines = append(lines, th.Title.Render(chart.Name))
		if len(chart.Entries) == 0 {
			lines = append(lines, "  none", "")
			continue
		}
		for i, entry := range chart.Entries {
			lines = append(lines, th.Label.Render(entry.Label)+
				bar(chart, entry, i, width)+" "+
				th.Value.Render(chart.Format(entry.Value)))
		}
		lines = append(lines, "")
	}
	return lines
}

func bar(chart stats.Chart, entry stats.Entry, i, width int) string {
	n := 1
	if top := chart.Max(); top > 0 {
		n = int(entry.Value * int64(width) / top)
	}
	if n < 1 {
		n = 1
	}
	shade := barFrom
	if k := len(chart.Entries); k > 1 {
		shade = barFrom.BlendLuv(barTo, float64(i)/float64(k-1)).Clamped()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(shade.Hex())).Render(strings.Repeat("█", n))
}
