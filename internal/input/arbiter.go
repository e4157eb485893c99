package input

import (
	"errors"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/muesli/cancelreader"

	"scry/internal/keys"
	"scry/internal/util/logx"
)

type Mode int

const (
	// ModeTerminal: stdin is the terminal and bubbletea reads key messages.
	ModeTerminal Mode = iota
	// ModeDecoder: stdin carries data, keys are decoded from /dev/tty.
	ModeDecoder
)

func (m Mode) String() string {
	if m == ModeDecoder {
		return "decoder"
	}
	return "terminal"
}

// DetectMode decides once, from stdin, which path delivers keys.
func DetectMode(stdin *os.File) Mode {
	fd := stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return ModeTerminal
	}
	return ModeDecoder
}

// Arbiter merges key input from whichever path is active into one queue
// that the session loop drains without blocking.
type Arbiter struct {
	mode Mode
	open func() (device, error)

	mu    sync.Mutex
	queue []keys.Event
	dev   device
	done  chan struct{}
}

func New(mode Mode) *Arbiter {
	return &Arbiter{mode: mode, open: openTTY}
}

func (a *Arbiter) Mode() Mode { return a.mode }

// Start begins reading the terminal device in decoder mode. Failing to
// acquire the device is logged and leaves the session without decoded keys.
func (a *Arbiter) Start() {
	if a.mode != ModeDecoder {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done != nil {
		return
	}
	dev, err := a.open()
	if err != nil {
		logx.Warnf("keyboard unavailable: %v", err)
		return
	}
	done := make(chan struct{})
	a.dev, a.done = dev, done
	go a.decode(dev, done)
}

func (a *Arbiter) decode(dev device, done chan struct{}) {
	defer close(done)
	defer dev.Release()
	dec := keys.NewDecoder(dev)
	for {
		ev, err := dec.Next()
		if err != nil {
			if !errors.Is(err, cancelreader.ErrCanceled) && !errors.Is(err, io.EOF) {
				logx.Warnf("keyboard read: %v", err)
			}
			return
		}
		a.push(ev)
	}
}

// Feed normalizes a terminal key message into the queue.
func (a *Arbiter) Feed(msg tea.KeyMsg) {
	a.push(keys.FromKeyMsg(msg)...)
}

func (a *Arbiter) push(evs ...keys.Event) {
	if len(evs) == 0 {
		return
	}
	a.mu.Lock()
	a.queue = append(a.queue, evs...)
	a.mu.Unlock()
}

// Drain returns every queued event in arrival order and empties the queue.
func (a *Arbiter) Drain() []keys.Event {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := a.queue
	a.queue = nil
	return out
}

// Release stops the decoder and waits until the terminal mode is restored,
// so another program can own the terminal.
func (a *Arbiter) Release() {
	a.mu.Lock()
	dev, done := a.dev, a.done
	a.dev, a.done = nil, nil
	a.mu.Unlock()
	if done == nil {
		return
	}
	if !dev.Cancel() {
		// The read cannot be interrupted; restore the terminal now and leave
		// the goroutine to exit on its next read.
		dev.Release()
		return
	}
	<-done
}

// Reacquire resumes reading after Release.
func (a *Arbiter) Reacquire() { a.Start() }

func (a *Arbiter) Close() { a.Release() }
