package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"scry/internal/classify"
	"scry/internal/config"
	"scry/internal/filter"
	"scry/internal/ingest"
	"scry/internal/input"
	"scry/internal/tools"
	"scry/internal/ui"
	"scry/internal/util/logx"
	"scry/internal/version"
)

func runViewer(cmd *cobra.Command, _ []string) error {
	logx.SetLevelFromEnv()
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	stdinTTY := isatty.IsTerminal(os.Stdin.Fd())
	if cfg.NeedsUsage(stdinTTY) {
		fmt.Fprint(cmd.OutOrStdout(), usage)
		return nil
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal; scry needs one to draw the viewer")
	}
	where, err := filter.NewExpr(cfg.Where)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	var intr input.Interrupt
	stop := intr.Notify()
	defer stop()

	registry := tools.NewRegistry(cfg.Tools...)
	go func() {
		if err := registry.Probe(ctx); err != nil {
			logx.Debugf("probe tools: %v", err)
		}
	}()

	opt := ingest.Options{
		Source: cfg.Source(stdinTTY),
		Path:   cfg.FilePath,
		Follow: cfg.Follow,
		Where:  where,
	}
	lines, errs := ingest.Read(ctx, opt)
	classifier, api, ready := newClassifier(cfg, cfg.OpenAIKey(), registry)

	logx.Infof("starting scry %s: %s", version.String(), cfg)
	err = ui.Run(ctx, ui.Options{
		Config:     cfg,
		Arbiter:    input.New(input.DetectMode(os.Stdin)),
		Interrupt:  &intr,
		Lines:      lines,
		Errs:       errs,
		Classifier: classifier,
		API:        api,
		APIReady:   ready,
		Tools:      registry,
		Source:     ingest.Describe(ctx, opt),
	})
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logx.Errorf("scry exited with error: %v", err)
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// newClassifier picks the model classifier when a key is configured and the
// local heuristics otherwise. It also returns the status-bar label.
func newClassifier(cfg *config.Config, key string, ts classify.Tools) (classify.Classifier, string, bool) {
	switch {
	case cfg.Offline:
		return classify.Heuristic{Reason: "offline"}, "offline", false
	case key == "":
		return classify.Heuristic{Reason: "no API key, run 'scry key set <KEY>'"}, "API: ✗", false
	}
	timeout := time.Duration(cfg.OpenAI.TimeoutSec) * time.Second
	return classify.NewOpenAI(key, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, timeout, ts), "API: ✓", true
}
