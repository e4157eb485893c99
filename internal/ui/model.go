package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"scry/internal/classify"
	"scry/internal/config"
	"scry/internal/input"
	"scry/internal/model"
	"scry/internal/tools"
)

const (
	tickInterval = 50 * time.Millisecond
	// maxLinesPerTick bounds how long one tick may spend ingesting.
	maxLinesPerTick = 500
	pageSize        = 10
)

type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayLogs
)

// Options carries everything the session needs that main builds.
type Options struct {
	Config     *config.Config
	Arbiter    *input.Arbiter
	Interrupt  *input.Interrupt
	Lines      <-chan string
	Errs       <-chan error
	Classifier classify.Classifier
	// API is the classifier status shown in the status bar, e.g. "API: ✓".
	API      string
	APIReady bool
	Tools    *tools.Registry
	Source   string
}

type Model struct {
	ctx context.Context
	cfg *config.Config

	// Pipeline
	lines <-chan string
	errs  <-chan error
	arb   *input.Arbiter
	intr  *input.Interrupt

	state *model.State

	classifier classify.Classifier
	registry   *tools.Registry
	view       classify.View
	pending    int  // classifications in flight
	toolBusy   bool // external tool owns the terminal
	quitting   bool

	// UI
	keymap  KeyMap
	styles  Styles
	help    help.Model
	spin    spinner.Model
	logs    viewport.Model
	overlay overlay
	width   int
	height  int

	// status
	source   string
	api      string
	apiReady bool
	lastMsg  string
}

func initialModel(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	arb := opts.Arbiter
	if arb == nil {
		arb = input.New(input.ModeTerminal)
	}
	m := &Model{
		ctx:        ctx,
		cfg:        cfg,
		lines:      opts.Lines,
		errs:       opts.Errs,
		arb:        arb,
		intr:       opts.Interrupt,
		state:      model.NewState(cfg.Capacity),
		classifier: opts.Classifier,
		registry:   opts.Tools,
		view:       classify.View{Kind: classify.Plain},
		keymap:     DefaultKeyMap(),
		styles:     NewStyles(cfg.Theme == config.ThemeDark),
		help:       help.New(),
		spin:       spinner.New(),
		source:     opts.Source,
		api:        opts.API,
		apiReady:   opts.APIReady,
		width:      80,
		height:     24,
	}
	m.spin.Spinner = spinner.Dot
	m.logs = viewport.New(m.width-4, m.height-4)
	return m
}

// Run starts the session and blocks until the user quits, ctx is done or the
// interrupt is raised. The keyboard device is released on every exit path.
func Run(ctx context.Context, opts Options) error {
	m := initialModel(ctx, opts)
	defer m.arb.Close()

	popts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	}
	if m.arb.Mode() == input.ModeDecoder {
		// stdin carries the log stream; keys come from /dev/tty.
		popts = append(popts, tea.WithInput(nil))
	}
	m.arb.Start()
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}
