package ui

import "github.com/charmbracelet/lipgloss"

type Styles struct {
	App        lipgloss.Style
	Hint       lipgloss.Style
	HintActive lipgloss.Style
	Title      lipgloss.Style
	Line       lipgloss.Style
	Match      lipgloss.Style
	Selected   lipgloss.Style
	Highlight  lipgloss.Style
	Cursor     lipgloss.Style
	Key        lipgloss.Style
	Notice     lipgloss.Style
	StatusOK   lipgloss.Style
	StatusWarn lipgloss.Style
	Help       lipgloss.Style
	PopupBox   lipgloss.Style
	PopupTitle lipgloss.Style
}

func NewStyles(dark bool) Styles {
	s := Styles{}
	if dark {
		s.App = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
		s.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.Line = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
		s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("60")).Padding(0, 1)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	} else {
		s.App = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
		s.Title = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Line = lipgloss.NewStyle()
		s.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.PopupBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
		s.PopupTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27"))
	}
	s.Hint = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	s.HintActive = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	s.Match = lipgloss.NewStyle().Foreground(lipgloss.Color("44"))
	s.Selected = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Background(lipgloss.Color("238"))
	s.Highlight = s.Selected.Bold(true)
	s.Cursor = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	s.Notice = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	s.StatusOK = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	s.StatusWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	return s
}
