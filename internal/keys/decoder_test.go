package keys

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func decodeAll(t *testing.T, in []byte) []string {
	t.Helper()
	d := NewDecoder(bytes.NewReader(in))
	var out []string
	for i := 0; i < 100; i++ {
		ev, err := d.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Fatalf("unexpected error: %v", err)
			}
			return out
		}
		if !ev.Pressed {
			t.Fatalf("event %v not marked pressed", ev)
		}
		out = append(out, ev.String())
	}
	t.Fatalf("decoder did not stop")
	return nil
}

func TestDecoderSequences(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []string
	}{
		{"up", []byte{0x1b, '[', 'A'}, []string{"up"}},
		{"down", []byte{0x1b, '[', 'B'}, []string{"down"}},
		{"page up", []byte{0x1b, '[', '5', '~'}, []string{"pgup"}},
		{"page down", []byte{0x1b, '[', '6', '~'}, []string{"pgdown"}},
		{"unknown csi dropped", []byte{0x1b, '[', 'Z', 'q'}, []string{"q"}},
		{"page without tilde drops the byte", []byte{0x1b, '[', '5', 'q', 'a'}, []string{"a"}},
		{"lone esc at eof", []byte{0x1b}, []string{"esc"}},
		{"esc then letter", []byte{0x1b, 'q'}, []string{"esc", "q"}},
		{"esc then esc", []byte{0x1b, 0x1b, '[', 'A'}, []string{"esc", "up"}},
		{"ctrl c", []byte{0x03}, []string{"ctrl+c"}},
		{"letters lowercased", []byte("QAFCqafc"), []string{"q", "a", "f", "c", "q", "a", "f", "c"}},
		{"export logs and help keys", []byte("elEL?"), []string{"e", "l", "e", "l", "?"}},
		{"other bytes dropped", []byte("xyz\r\n1"), nil},
		{"incomplete csi at eof", []byte{'a', 0x1b, '['}, []string{"a"}},
		{"mixed", []byte{'f', 0x1b, '[', 'B', 0x1b, '[', 'B', 'c', 0x03}, []string{"f", "down", "down", "c", "ctrl+c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAll(t, tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestDecoderStopsOnReadError(t *testing.T) {
	boom := errors.New("boom")
	d := NewDecoder(failingReader{err: boom})
	for i := 0; i < 2; i++ {
		if _, err := d.Next(); !errors.Is(err, boom) {
			t.Fatalf("call %d: got %v, want boom", i, err)
		}
	}
}

func TestFromKeyMsgMatchesDecoder(t *testing.T) {
	tests := []struct {
		msg   tea.KeyMsg
		bytes []byte
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, []byte{0x1b, '[', 'A'}},
		{tea.KeyMsg{Type: tea.KeyDown}, []byte{0x1b, '[', 'B'}},
		{tea.KeyMsg{Type: tea.KeyPgUp}, []byte{0x1b, '[', '5', '~'}},
		{tea.KeyMsg{Type: tea.KeyPgDown}, []byte{0x1b, '[', '6', '~'}},
		{tea.KeyMsg{Type: tea.KeyEsc}, []byte{0x1b}},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, []byte{0x03}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Q'}}, []byte{'Q'}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}}, []byte{'f'}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}, Alt: true}, []byte{0x1b, 'a'}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}, []byte{'e'}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'L'}}, []byte{'L'}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, []byte{'?'}},
	}
	for _, tt := range tests {
		var got []string
		for _, ev := range FromKeyMsg(tt.msg) {
			got = append(got, ev.String())
		}
		want := decodeAll(t, tt.bytes)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: terminal path %q, decoder path %q", tt.msg, got, want)
		}
	}
}

func TestEventStringMatchesBubbletea(t *testing.T) {
	tests := []struct {
		ev  Event
		msg tea.KeyMsg
	}{
		{KeyEvent(PageUp), tea.KeyMsg{Type: tea.KeyPgUp}},
		{KeyEvent(PageDown), tea.KeyMsg{Type: tea.KeyPgDown}},
		{KeyEvent(Home), tea.KeyMsg{Type: tea.KeyHome}},
		{KeyEvent(End), tea.KeyMsg{Type: tea.KeyEnd}},
		{KeyEvent(Esc), tea.KeyMsg{Type: tea.KeyEsc}},
		{CtrlEvent('c'), tea.KeyMsg{Type: tea.KeyCtrlC}},
		{CharEvent('q'), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
	}
	for _, tt := range tests {
		if tt.ev.String() != tt.msg.String() {
			t.Errorf("event %q != key msg %q", tt.ev.String(), tt.msg.String())
		}
	}
}
