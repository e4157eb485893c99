package filter

import (
	"strings"
	"unicode"
)

// maxTokenLen bounds quoted and assigned tokens, in bytes.
const maxTokenLen = 100

// Token derives a filter token from a line. It tries, in order: the text
// between the first two double quotes, the value after the first '=', and the
// first word containing an alphanumeric character.
func Token(line string) (string, bool) {
	if t, ok := quoted(line); ok {
		return t, true
	}
	if t, ok := assigned(line); ok {
		return t, true
	}
	return firstWord(line)
}

func quoted(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end < 0 {
		return "", false
	}
	v := line[start+1 : start+1+end]
	return v, v != "" && len(v) < maxTokenLen
}

func assigned(line string) (string, bool) {
	eq := strings.IndexByte(line, '=')
	if eq <= 0 || eq >= len(line)-1 {
		return "", false
	}
	fields := strings.Fields(line[eq+1:])
	if len(fields) == 0 {
		return "", false
	}
	v := fields[0]
	return v, len(v) < maxTokenLen
}

func firstWord(line string) (string, bool) {
	for _, w := range strings.Fields(line) {
		if len(w) < 2 || strings.IndexFunc(w, isAlnum) < 0 {
			continue
		}
		// only the first candidate word counts
		end := strings.IndexFunc(w, func(r rune) bool { return !isAlnum(r) && r != '_' && r != '-' })
		if end < 0 {
			end = len(w)
		}
		if end < 2 {
			return "", false
		}
		return w[:end], true
	}
	return "", false
}

func isAlnum(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }

// Span is a half-open byte range [Start, End) within a line.
type Span struct{ Start, End int }

// Spans returns the non-overlapping occurrences of token in line, left to right.
func Spans(line, token string) []Span {
	if token == "" {
		return nil
	}
	var out []Span
	for off := 0; off <= len(line)-len(token); {
		i := strings.Index(line[off:], token)
		if i < 0 {
			break
		}
		s := off + i
		out = append(out, Span{Start: s, End: s + len(token)})
		off = s + len(token)
	}
	return out
}
