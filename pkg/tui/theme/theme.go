package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Board  BoardTheme
	Form   FormTheme
	Footer FooterTheme
	Stats  StatsTheme
}

// HeaderTheme styles the trip info line and the filter and sort tabs.
type HeaderTheme struct {
	Title     lipgloss.Style
	Dates     lipgloss.Style
	Cost      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Button    lipgloss.Style
	Disabled  lipgloss.Style
}

// BoardTheme styles day headers and event rows.
type BoardTheme struct {
	Day       lipgloss.Style
	Counter   lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Time      lipgloss.Style
	Duration  lipgloss.Style
	Price     lipgloss.Style
	Offer     lipgloss.Style
	Favourite lipgloss.Style
	Message   lipgloss.Style
}

// FormTheme styles the edit form. Shake replaces Frame while the failure cue
// plays.
type FormTheme struct {
	Frame       lipgloss.Style
	Shake       lipgloss.Style
	Label       lipgloss.Style
	FocusLabel  lipgloss.Style
	Description lipgloss.Style
	Error       lipgloss.Style
	Button      lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// StatsTheme styles the statistics screen.
type StatsTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	tab := lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(13)
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 1)

	return Theme{
		Header: HeaderTheme{
			Title:     lipgloss.NewStyle().Bold(true),
			Dates:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Cost:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Tab:       tab,
			ActiveTab: tab.Foreground(lipgloss.Color("212")).Bold(true).Underline(true),
			Button:    lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("63")).Padding(0, 1),
			Disabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Background(lipgloss.Color("236")).Padding(0, 1),
		},
		Board: BoardTheme{
			Day:       lipgloss.NewStyle().Bold(true).Underline(true),
			Counter:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Item:      lipgloss.NewStyle().PaddingLeft(2),
			Selected:  lipgloss.NewStyle().PaddingLeft(1).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("212")),
			Time:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Duration:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Price:     lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
			Offer:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(6),
			Favourite: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
			Message:   lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")).Padding(1, 2),
		},
		Form: FormTheme{
			Frame:       frame,
			Shake:       frame.BorderForeground(lipgloss.Color("196")).MarginLeft(2),
			Label:       label,
			FocusLabel:  label.Foreground(lipgloss.Color("212")).Bold(true),
			Description: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
			Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
			Button:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Stats: StatsTheme{
			Frame: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Label: lipgloss.NewStyle().Width(18),
			Value: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		},
	}
}
