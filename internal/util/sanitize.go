package util

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// MaxDisplayLen is the number of characters of a line shown in the viewer.
const MaxDisplayLen = 1000

// Sanitize makes s safe to draw in a terminal cell grid: escape sequences are
// removed, control characters replaced and the result cut at max characters.
func Sanitize(s string, max int) string {
	s = ansi.Strip(s)
	var b strings.Builder
	b.Grow(min(len(s), max+3))
	n := 0
	for _, r := range s {
		if n >= max {
			b.WriteString("...")
			break
		}
		switch {
		case r == '\t':
			b.WriteString("  ")
		case r == '\n':
			b.WriteByte(' ')
		case r == '\r':
			continue
		case r == 0:
			b.WriteString(`\0`)
		case unicode.IsControl(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
		n++
	}
	return b.String()
}

// Display sanitizes a log line for the main view.
func Display(s string) string {
	out := Sanitize(s, MaxDisplayLen)
	if strings.TrimSpace(out) == "" {
		return "[empty line]"
	}
	return out
}
