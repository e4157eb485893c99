package input

import (
	"fmt"
	"os"
	"sync"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

const ttyPath = "/dev/tty"

// device is a cancellable byte source whose terminal mode must be restored.
type device interface {
	Read(p []byte) (int, error)
	Cancel() bool
	Release()
}

// ttyGuard holds the controlling terminal in raw mode until Release.
type ttyGuard struct {
	f     *os.File
	state *term.State
	cr    cancelreader.CancelReader
	once  sync.Once
}

func openTTY() (device, error) {
	f, err := os.Open(ttyPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ttyPath, err)
	}
	state, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("raw mode on %s: %w", ttyPath, err)
	}
	cr, err := cancelreader.NewReader(f)
	if err != nil {
		_ = term.Restore(int(f.Fd()), state)
		f.Close()
		return nil, fmt.Errorf("cancel reader on %s: %w", ttyPath, err)
	}
	return &ttyGuard{f: f, state: state, cr: cr}, nil
}

func (g *ttyGuard) Read(p []byte) (int, error) { return g.cr.Read(p) }

// Cancel unblocks a pending Read, which then fails with cancelreader.ErrCanceled.
func (g *ttyGuard) Cancel() bool { return g.cr.Cancel() }

// Release restores the original terminal mode. Safe to call more than once.
func (g *ttyGuard) Release() {
	g.once.Do(func() {
		_ = g.cr.Close()
		_ = term.Restore(int(g.f.Fd()), g.state)
		_ = g.f.Close()
	})
}
