package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"scry/internal/classify"
	"scry/internal/export"
	"scry/internal/keys"
	"scry/internal/util/logx"
)

type tickMsg struct{}

type classifiedMsg struct {
	res classify.Result
	err error
}

type toolDoneMsg struct {
	tool string
	err  error
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.logs.Width = max(msg.Width-4, 10)
		m.logs.Height = max(msg.Height-4, 3)
		return m, nil

	case tea.KeyMsg:
		m.arb.Feed(msg)
		return m, m.dispatch(m.arb.Drain())

	case tickMsg:
		if m.intr.Raised() {
			logx.Infof("interrupted, shutting down")
			return m, tea.Quit
		}
		m.drainLines()
		m.drainErrs()
		if m.overlay == overlayLogs {
			m.refreshLogs()
		}
		cmd := m.dispatch(m.arb.Drain())
		if m.quitting {
			return m, cmd
		}
		return m, tea.Batch(cmd, tick())

	case classifiedMsg:
		m.pending--
		return m, m.applyResult(msg)

	case toolDoneMsg:
		m.toolBusy = false
		m.arb.Reacquire()
		if msg.err != nil {
			logx.Warnf("%s: %v", msg.tool, msg.err)
			m.lastMsg = fmt.Sprintf("Error launching %s: %v", msg.tool, msg.err)
		} else {
			m.lastMsg = fmt.Sprintf("%s exited", msg.tool)
		}
		return m, nil

	case spinner.TickMsg:
		if m.pending <= 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// drainLines moves waiting lines into the buffer without blocking.
func (m *Model) drainLines() {
	if m.lines == nil {
		return
	}
	for n := 0; n < maxLinesPerTick; n++ {
		select {
		case line, ok := <-m.lines:
			if !ok {
				logx.Debugf("input closed after %d lines", m.state.Len())
				m.lines = nil
				return
			}
			m.state.Append(line)
		default:
			return
		}
	}
}

func (m *Model) drainErrs() {
	if m.errs == nil {
		return
	}
	for {
		select {
		case err, ok := <-m.errs:
			if !ok {
				m.errs = nil
				return
			}
			logx.Errorf("ingest: %v", err)
		default:
			return
		}
	}
}

// dispatch handles events in arrival order. Quitting wins over anything
// queued after it.
func (m *Model) dispatch(evs []keys.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, ev := range evs {
		if !ev.Pressed {
			continue
		}
		cmd := m.handleKey(ev)
		if m.quitting {
			return tea.Quit
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(ev keys.Event) tea.Cmd {
	km := m.keymap
	if key.Matches(ev, km.Quit) {
		m.quitting = true
		return nil
	}
	if m.overlay != overlayNone {
		return m.handleOverlayKey(ev)
	}
	switch {
	case key.Matches(ev, km.Analyze):
		return m.analyze()
	case key.Matches(ev, km.Toggle):
		if _, ok := m.state.Selected(); ok {
			m.state.ClearSelection()
		} else if i, ok := m.state.IndexAtOffset(); ok {
			m.state.Select(i)
		}
	case key.Matches(ev, km.Clear):
		m.state.ClearSelection()
	case key.Matches(ev, km.Up):
		m.move(-1)
	case key.Matches(ev, km.Down):
		m.move(1)
	case key.Matches(ev, km.PageUp):
		m.state.ScrollUp(pageSize)
	case key.Matches(ev, km.PageDown):
		m.state.ScrollDown(pageSize)
	case key.Matches(ev, km.Home):
		m.state.ScrollTo(0)
	case key.Matches(ev, km.End):
		m.state.ScrollTo(m.state.DisplayCount() - 1)
	case key.Matches(ev, km.Export):
		m.exportDisplay()
	case key.Matches(ev, km.Logs):
		m.overlay = overlayLogs
		m.refreshLogs()
		m.logs.GotoBottom()
	case key.Matches(ev, km.Help):
		m.overlay = overlayHelp
	}
	return nil
}

func (m *Model) handleOverlayKey(ev keys.Event) tea.Cmd {
	km := m.keymap
	switch {
	case key.Matches(ev, km.Clear),
		m.overlay == overlayHelp && key.Matches(ev, km.Help),
		m.overlay == overlayLogs && key.Matches(ev, km.Logs):
		m.overlay = overlayNone
	case m.overlay != overlayLogs:
	case key.Matches(ev, km.Up):
		m.logs.SetYOffset(m.logs.YOffset - 1)
	case key.Matches(ev, km.Down):
		m.logs.SetYOffset(m.logs.YOffset + 1)
	case key.Matches(ev, km.PageUp):
		m.logs.SetYOffset(m.logs.YOffset - m.logs.Height)
	case key.Matches(ev, km.PageDown):
		m.logs.SetYOffset(m.logs.YOffset + m.logs.Height)
	case key.Matches(ev, km.Home):
		m.logs.GotoTop()
	case key.Matches(ev, km.End):
		m.logs.GotoBottom()
	}
	return nil
}

// move steps the selection to a neighbouring line and keeps it in view, or
// scrolls by one row when nothing is selected.
func (m *Model) move(delta int) {
	sel, ok := m.state.Selected()
	if !ok {
		if delta < 0 {
			m.state.ScrollUp(-delta)
		} else {
			m.state.ScrollDown(delta)
		}
		return
	}
	next := sel + delta
	if next < 0 || next >= m.state.Len() {
		return
	}
	m.state.Select(next)
	if pos, ok := m.state.PositionOf(next); ok {
		m.state.ScrollTo(pos)
	} else {
		m.state.ScrollTo(next)
	}
}

func (m *Model) analyze() tea.Cmd {
	if m.classifier == nil {
		m.lastMsg = "No classifier configured"
		return nil
	}
	if m.state.Len() == 0 {
		m.lastMsg = "Nothing to analyze yet"
		return nil
	}
	if c, ok := m.classifier.(*classify.OpenAI); ok {
		m.lastMsg = fmt.Sprintf("Calling OpenAI API (%s) to analyze logs...", c.Model())
	} else {
		m.lastMsg = "Analyzing logs with heuristics..."
	}
	ctx, c, lines := m.ctx, m.classifier, m.state.Lines()
	m.pending++
	run := func() tea.Msg {
		res, err := c.Classify(ctx, lines)
		return classifiedMsg{res: res, err: err}
	}
	if m.pending == 1 {
		return tea.Batch(run, m.spin.Tick)
	}
	return run
}

// applyResult installs a classification. Results are applied in the order
// they arrive, so the last one to finish wins.
func (m *Model) applyResult(msg classifiedMsg) tea.Cmd {
	if msg.err != nil {
		logx.Warnf("classify: %v", msg.err)
		m.view = classify.View{Kind: classify.Plain}
		m.lastMsg = fmt.Sprintf("OpenAI API error: %v", msg.err)
		return nil
	}
	m.view = msg.res.View
	m.lastMsg = msg.res.Summary
	logx.Infof("view: %s", m.view.Name())
	if m.view.Kind == classify.External {
		return m.launch(m.view.Tool)
	}
	return nil
}

// launch hands the terminal to an external tool with the buffer on its stdin.
func (m *Model) launch(name string) tea.Cmd {
	if m.registry == nil || m.toolBusy {
		return nil
	}
	cmd, err := m.registry.Command(name, m.state.Lines())
	if err != nil {
		m.view = classify.View{Kind: classify.JSON}
		m.lastMsg = fmt.Sprintf("Error launching %s: %v", name, err)
		return nil
	}
	logx.Infof("launching %s", cmd.String())
	m.toolBusy = true
	m.arb.Release()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return toolDoneMsg{tool: name, err: err}
	})
}

// exportDisplay writes the display sequence, so an active filter narrows
// the export too.
func (m *Model) exportDisplay() {
	rows := m.state.Display()
	format := export.FormatText
	if m.cfg.ExportFormat != "" {
		format = export.Format(m.cfg.ExportFormat)
	}
	path := m.cfg.ExportOut
	if path == "" {
		ext := "log"
		if format == export.FormatNDJSON {
			ext = "ndjson"
		}
		path = fmt.Sprintf("scry-export-%s.%s", time.Now().Format("20060102-150405"), ext)
	}
	if err := export.ToFile(path, format, rows); err != nil {
		logx.Warnf("export: %v", err)
		m.lastMsg = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.lastMsg = fmt.Sprintf("Exported %d lines to %s", len(rows), path)
}

func (m *Model) refreshLogs() {
	atBottom := m.logs.AtBottom()
	m.logs.SetContent(logx.Dump())
	if atBottom {
		m.logs.GotoBottom()
	}
}
