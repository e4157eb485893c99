package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds logical key names (keys.Event.String) to actions. The same
// bindings serve both input paths.
type KeyMap struct {
	Quit     key.Binding
	Analyze  key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Export   key.Binding
	Logs     key.Binding
	Help     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Analyze:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analyze")),
		Toggle:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter by line")),
		Clear:    key.NewBinding(key.WithKeys("c", "esc"), key.WithHelp("c/esc", "clear filter")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first line")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last line")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Logs:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "app logs")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Analyze, k.Toggle, k.Up, k.Down, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Toggle, k.Clear, k.Analyze},
		{k.Export, k.Logs, k.Help, k.Quit},
	}
}
