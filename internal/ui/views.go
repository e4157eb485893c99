package ui

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"scry/internal/filter"
	"scry/internal/parse"
	"scry/internal/util"
)

const (
	gutterCursor = "▸ "
	gutterBlank  = "  "
)

func gutter(cursor bool) string {
	if cursor {
		return gutterCursor
	}
	return gutterBlank
}

// rowStyle is the base style of the line at buffer index i.
func (m *Model) rowStyle(i int) lipgloss.Style {
	if sel, ok := m.state.Selected(); ok && sel == i {
		return m.styles.Selected
	}
	if m.state.Filtering() {
		return m.styles.Match
	}
	return m.styles.Line
}

// keyStyle colours field names unless the row already has a filter or
// selection colour.
func (m *Model) keyStyle(i int) lipgloss.Style {
	if sel, ok := m.state.Selected(); (ok && sel == i) || m.state.Filtering() {
		return m.rowStyle(i)
	}
	return m.styles.Key
}

// displayToken is the filter token as it appears in sanitized text.
func (m *Model) displayToken() string {
	if !m.state.Filtering() {
		return ""
	}
	return util.Sanitize(m.state.Token(), util.MaxDisplayLen)
}

// highlight renders text in base with every occurrence of token emphasized.
func (m *Model) highlight(text, token string, base lipgloss.Style) string {
	spans := filter.Spans(text, token)
	if len(spans) == 0 {
		return base.Render(text)
	}
	var b strings.Builder
	last := 0
	for _, sp := range spans {
		if sp.Start > last {
			b.WriteString(base.Render(text[last:sp.Start]))
		}
		b.WriteString(m.styles.Highlight.Render(text[sp.Start:sp.End]))
		last = sp.End
	}
	if last < len(text) {
		b.WriteString(base.Render(text[last:]))
	}
	return b.String()
}

func (m *Model) plainRows(height int) []string {
	entries, cursor := m.state.Window(height)
	tok := m.displayToken()
	rows := make([]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, gutter(i == cursor)+m.highlight(util.Display(e.Line), tok, m.rowStyle(e.Index)))
	}
	return rows
}

func (m *Model) keyValueRows(height int) []string {
	entries, cursor := m.state.Window(height)
	tok := m.displayToken()
	rows := make([]string, 0, len(entries))
	for i, e := range entries {
		base := m.rowStyle(e.Index)
		pairs := parse.KeyValues(e.Line)
		if len(pairs) == 0 {
			rows = append(rows, gutter(i == cursor)+m.highlight(util.Display(e.Line), tok, base))
			continue
		}
		keyStyle := m.keyStyle(e.Index)
		cells := make([]string, 0, len(pairs))
		for _, kv := range pairs {
			k := util.Sanitize(kv.Key, 100)
			v := util.Sanitize(kv.Value, 200)
			if tok != "" && (strings.Contains(k, tok) || strings.Contains(v, tok) || strings.Contains(k+"="+v, tok)) {
				cells = append(cells, m.styles.Highlight.Render(k+": "+v))
				continue
			}
			cells = append(cells, keyStyle.Render(k+": ")+base.Render(v))
		}
		rows = append(rows, gutter(i == cursor)+strings.Join(cells, base.Render(" ")))
	}
	return rows
}

// jsonRows renders one row per top-level key of each JSON line in the
// window. Lines that are not JSON are skipped. When the rows overflow,
// the block of the cursor line stays visible.
func (m *Model) jsonRows(height int) []string {
	entries, cursor := m.state.Window(height)
	var rows []string
	cursorEnd := -1
	for i, e := range entries {
		v, ok := parse.JSONValue(e.Line)
		if !ok {
			continue
		}
		rows = append(rows, m.jsonEntryRows(v, e.Index, i == cursor)...)
		if i == cursor {
			cursorEnd = len(rows) - 1
		}
	}
	if len(rows) > height {
		start := 0
		if cursorEnd >= height {
			start = cursorEnd - height + 1
		}
		rows = rows[start : start+height]
	}
	return rows
}

func (m *Model) jsonEntryRows(v any, index int, cursor bool) []string {
	base := m.rowStyle(index)
	tok := m.displayToken()
	obj, ok := v.(map[string]any)
	if !ok {
		b, _ := json.Marshal(v)
		return []string{gutter(cursor) + base.Render(util.Sanitize(string(b), util.MaxDisplayLen))}
	}
	if len(obj) == 0 {
		return []string{gutter(cursor) + base.Render("{}")}
	}
	keyWidth := max(m.width*3/10, 8)
	keyStyle := m.keyStyle(index)
	rows := make([]string, 0, len(obj))
	for n, k := range sortedKeys(obj) {
		kt := ansi.Truncate(util.Sanitize(k, 100), keyWidth-1, "…")
		ks := keyStyle
		if tok != "" && strings.Contains(kt, tok) {
			ks = m.styles.Highlight
		}
		val := formatValue(obj[k])
		vs := base.Render(val)
		if _, isStr := obj[k].(string); isStr && tok != "" {
			vs = m.highlight(val, tok, base)
		}
		rows = append(rows, gutter(cursor && n == 0)+ks.Width(keyWidth).Render(kt)+vs)
	}
	return rows
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatValue renders a top-level JSON value for the value column. Small
// arrays and objects are listed inline; larger ones are summarized.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return util.Sanitize(t, 500)
	case []any:
		if len(t) == 0 {
			return "[]"
		}
		if len(t) > 5 {
			return "[" + strconv.Itoa(len(t)) + " items]"
		}
		items := make([]string, len(t))
		for i, it := range t {
			items[i] = inline(it, 50)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case map[string]any:
		if len(t) == 0 {
			return "{}"
		}
		if len(t) > 3 {
			return "{" + strconv.Itoa(len(t)) + " keys}"
		}
		keys := sortedKeys(t)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + ": " + inline(t[k], 30)
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	}
	return inline(v, 0)
}

// inline renders a nested value on one line; strings are quoted and cut at
// limit characters.
func inline(v any, limit int) string {
	switch t := v.(type) {
	case string:
		return `"` + escapeString(util.Sanitize(t, limit)) + `"`
	case nil:
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return util.Sanitize(string(b), 100)
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
