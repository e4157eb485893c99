package keys

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

type Kind int

const (
	Char Kind = iota
	Up
	Down
	PageUp
	PageDown
	Home
	End
	Esc
	Ctrl
)

// Event is a logical key press, independent of where it was read from.
// Rune is set for Char and Ctrl events only.
type Event struct {
	Kind    Kind
	Rune    rune
	Pressed bool
}

func CharEvent(r rune) Event { return Event{Kind: Char, Rune: unicode.ToLower(r), Pressed: true} }
func CtrlEvent(r rune) Event { return Event{Kind: Ctrl, Rune: unicode.ToLower(r), Pressed: true} }
func KeyEvent(k Kind) Event  { return Event{Kind: k, Pressed: true} }

// String renders the event with the same names bubbletea uses for tea.KeyMsg,
// so key.Binding definitions match both input paths.
func (e Event) String() string {
	switch e.Kind {
	case Char:
		return string(e.Rune)
	case Ctrl:
		return "ctrl+" + string(e.Rune)
	case Up:
		return "up"
	case Down:
		return "down"
	case PageUp:
		return "pgup"
	case PageDown:
		return "pgdown"
	case Home:
		return "home"
	case End:
		return "end"
	case Esc:
		return "esc"
	}
	return ""
}

// FromKeyMsg normalizes a terminal key message. Alt-modified runes arrive
// from the terminal as one message; they are split into escape followed by
// the rune, which is what the byte decoder produces for the same input.
func FromKeyMsg(msg tea.KeyMsg) []Event {
	switch msg.Type {
	case tea.KeyUp:
		return []Event{KeyEvent(Up)}
	case tea.KeyDown:
		return []Event{KeyEvent(Down)}
	case tea.KeyPgUp:
		return []Event{KeyEvent(PageUp)}
	case tea.KeyPgDown:
		return []Event{KeyEvent(PageDown)}
	case tea.KeyHome:
		return []Event{KeyEvent(Home)}
	case tea.KeyEnd:
		return []Event{KeyEvent(End)}
	case tea.KeyEsc:
		return []Event{KeyEvent(Esc)}
	case tea.KeyCtrlC:
		return []Event{CtrlEvent('c')}
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return nil
		}
		ev := CharEvent(msg.Runes[0])
		if msg.Alt {
			return []Event{KeyEvent(Esc), ev}
		}
		return []Event{ev}
	}
	return nil
}
