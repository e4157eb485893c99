package parse

import (
	"encoding/json"
	"strconv"
	"strings"
)

// KV is one key=value pair in the order it appeared on the line.
type KV struct {
	Key   string
	Value string
}

// KeyValues extracts logfmt-style pairs (supports quoted values). Words
// without '=' and pairs with an empty key are skipped.
func KeyValues(line string) []KV {
	var out []KV
	for _, word := range splitWords(line) {
		eq := strings.IndexByte(word, '=')
		if eq <= 0 {
			continue
		}
		out = append(out, KV{Key: word[:eq], Value: unquote(word[eq+1:])})
	}
	return out
}

// splitWords splits on spaces and tabs outside double quotes.
func splitWords(s string) []string {
	var words []string
	inQuote := false
	start := -1
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			inQuote = !inQuote
		}
		if !inQuote && (c == ' ' || c == '\t') {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func unquote(v string) string {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		if u, err := strconv.Unquote(v); err == nil {
			return u
		}
		return v[1 : len(v)-1]
	}
	return v
}

// JSONValue decodes line when it holds a single JSON value. ok is false for
// anything that is not valid JSON.
func JSONValue(line string) (any, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// Fields flattens a line into named values: the top-level keys of a JSON
// object, or else its key=value pairs. Numeric logfmt values become float64
// and true/false become bool so expressions can compare them.
func Fields(line string) map[string]any {
	if v, ok := JSONValue(line); ok {
		if obj, ok := v.(map[string]any); ok {
			return obj
		}
	}
	out := map[string]any{}
	for _, kv := range KeyValues(line) {
		out[kv.Key] = typed(kv.Value)
	}
	return out
}

func typed(v string) any {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil && (v == "true" || v == "false") {
		return b
	}
	return v
}
