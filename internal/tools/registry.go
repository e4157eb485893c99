package tools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scry/internal/util/logx"
)

var ErrUnknownTool = errors.New("unknown external tool")

// probeTimeout bounds each "<check> --version" run.
const probeTimeout = 2 * time.Second

// Tool is an external viewer that reads log lines on stdin.
type Tool struct {
	Name        string   `toml:"name"`
	Command     string   `toml:"command"`
	Check       string   `toml:"check"` // executable probed for availability; defaults to Command
	Args        []string `toml:"args"`
	Description string   `toml:"description"`
}

func (t Tool) checkCmd() string {
	if t.Check != "" {
		return t.Check
	}
	return t.Command
}

func Builtin() []Tool {
	return []Tool{
		{Name: "jless", Command: "jless", Args: []string{"--no-auto-expand"}, Description: "JSON viewer with syntax highlighting and navigation"},
		{Name: "fx", Command: "fx", Description: "Interactive JSON viewer with search and filtering"},
		{Name: "visidata", Command: "vd", Args: []string{"-f", "jsonl"}, Description: "Interactive spreadsheet/data analysis tool for structured data"},
		{Name: "tabview", Command: "tabview", Description: "Table viewer for structured data"},
		{Name: "lnav", Command: "lnav", Description: "Advanced log file viewer with SQL queries and filtering"},
		{Name: "gonzo", Command: "gonzo", Description: "Real-time log analysis terminal UI"},
		{Name: "csvtk", Command: "csvtk", Args: []string{"view"}, Description: "CSV/TSV viewer and processor"},
		{Name: "less", Command: "less", Args: []string{"-R", "-S"}, Description: "Text viewer with search and navigation (fallback)"},
	}
}

// Registry maps tool names to tools and remembers which ones are installed.
type Registry struct {
	tools map[string]Tool

	mu        sync.RWMutex
	available map[string]bool
}

// NewRegistry returns the built-in tools plus extra; an extra tool replaces a
// built-in one with the same name.
func NewRegistry(extra ...Tool) *Registry {
	r := &Registry{tools: map[string]Tool{}, available: map[string]bool{}}
	for _, t := range Builtin() {
		r.tools[t.Name] = t
	}
	for _, t := range extra {
		if t.Name == "" || t.Command == "" {
			logx.Warnf("ignoring external tool without name or command: %+v", t)
			continue
		}
		r.tools[t.Name] = t
	}
	return r
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns every registered tool name, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.tools))
	for n := range r.tools {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Probe checks every tool in parallel and records which ones can be started.
func (r *Registry) Probe(ctx context.Context) error {
	names := r.Names()
	found := make([]bool, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, n := range names {
		i, t := i, r.tools[n]
		g.Go(func() error {
			found[i] = probe(gctx, t.checkCmd())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range names {
		r.available[n] = found[i]
	}
	logx.Debugf("external tools available: %v", r.availableNamesLocked())
	return ctx.Err()
}

// probe reports whether cmd can be started. A non-zero exit still counts.
func probe(ctx context.Context, cmd string) bool {
	path, err := exec.LookPath(cmd)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	err = exec.CommandContext(ctx, path, "--version").Run()
	var exitErr *exec.ExitError
	return err == nil || errors.As(err, &exitErr)
}

func (r *Registry) Available(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.available[name]
}

func (r *Registry) AvailableNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.availableNamesLocked()
}

func (r *Registry) availableNamesLocked() []string {
	var out []string
	for _, n := range r.Names() {
		if r.available[n] {
			out = append(out, n)
		}
	}
	return out
}

// Descriptions lists installed tools as "name: description" lines.
func (r *Registry) Descriptions() string {
	var b strings.Builder
	for _, n := range r.AvailableNames() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", n, r.tools[n].Description)
	}
	return b.String()
}

// Command builds the process for tool name with lines joined by newlines on
// stdin. Stdout and stderr are left for the caller to attach.
func (r *Registry) Command(name string, lines []string) (*exec.Cmd, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	cmd := exec.Command(t.Command, t.Args...)
	cmd.Stdin = strings.NewReader(strings.Join(lines, "\n"))
	return cmd, nil
}
