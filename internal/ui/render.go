package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"scry/internal/classify"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.overlay {
	case overlayHelp:
		return m.renderPopup("Keys", m.help.FullHelpView(m.keymap.FullHelp()))
	case overlayLogs:
		return m.renderPopup("Application logs (l/esc to close)", m.logs.View())
	}
	top := m.renderTopBar()
	status := m.renderStatus()
	body := m.renderMain(m.mainHeight())
	return lipgloss.JoinVertical(lipgloss.Left, top, body, status)
}

// mainHeight is the number of content rows between the bars and the title.
func (m *Model) mainHeight() int {
	return max(m.height-3, 1)
}

func (m *Model) renderTopBar() string {
	st := m.styles
	filter := st.Hint.Render("[f]")
	if m.state.Filtering() {
		filter = st.HintActive.Render("[f]")
	}
	parts := []string{
		st.App.Render("scry"),
		"View: " + m.view.Name(),
		st.Hint.Render("[a]") + " analyze " + filter + " filter " +
			st.Hint.Render("[↑↓]") + " nav " + st.Hint.Render("[?]") + " help " +
			st.Hint.Render("[q]") + " quit",
	}
	return m.fit(strings.Join(parts, " | "))
}

func (m *Model) renderStatus() string {
	msg := m.lastMsg
	if msg == "" {
		msg = "Ready"
	}
	text := strings.Join([]string{m.source, m.api, msg}, " | ")
	if m.pending > 0 {
		text = m.spin.View() + " " + text
	}
	style := m.styles.StatusWarn
	if m.apiReady {
		style = m.styles.StatusOK
	}
	return style.Render(m.fit(text))
}

// renderMain draws the title row and height rows of the active view.
func (m *Model) renderMain(height int) string {
	var title string
	var rows []string
	switch m.view.Kind {
	case classify.KeyValue:
		title = m.title("Key-Value Pairs")
		rows = m.keyValueRows(height)
	case classify.JSON:
		title = m.title("JSON Logs")
		rows = m.jsonRows(height)
		if len(rows) == 0 {
			rows = []string{m.styles.Notice.Render("No valid JSON logs found")}
		}
	case classify.External:
		title = "External Tool"
		rows = m.externalRows()
	default:
		title = m.title("Log Lines")
		rows = m.plainRows(height)
	}
	for i := range rows {
		rows[i] = m.fit(rows[i])
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return m.styles.Title.Render(m.fit(title)) + "\n" + strings.Join(rows, "\n")
}

func (m *Model) title(name string) string {
	pos := 0
	if n := m.state.DisplayCount(); n > 0 {
		pos = m.state.Offset() + 1
	}
	counts := fmt.Sprintf("%d/%d", pos, m.state.DisplayCount())
	if m.state.Filtering() {
		return fmt.Sprintf("%s (filtered: '%s', %d matches) %s", name, m.displayToken(), len(m.state.Matches()), counts)
	}
	return fmt.Sprintf("%s %s", name, counts)
}

func (m *Model) externalRows() []string {
	if m.toolBusy {
		return []string{m.styles.Notice.Render(fmt.Sprintf("External tool '%s' is running.", m.view.Tool))}
	}
	return []string{
		m.styles.Notice.Render(fmt.Sprintf("External tool '%s' was launched with the buffer on its input.", m.view.Tool)),
		"",
		"Press [a] to analyze again.",
	}
}

func (m *Model) renderPopup(title, body string) string {
	box := m.styles.PopupBox.Width(max(m.width-4, 10))
	content := m.styles.PopupTitle.Render(title) + "\n\n" + body
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(content))
}

// fit cuts s to the terminal width without breaking escape sequences.
func (m *Model) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	return ansi.Truncate(s, m.width, "")
}
