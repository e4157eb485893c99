package input

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Interrupt is a process-wide flag raised by SIGINT or SIGTERM. It works in
// both input modes, including when the terminal does not generate signals.
type Interrupt struct {
	raised atomic.Bool
}

// Notify raises the flag on the first SIGINT or SIGTERM. The returned
// function stops signal delivery.
func (i *Interrupt) Notify() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	quit := make(chan struct{})
	go func() {
		select {
		case <-ch:
			i.raised.Store(true)
		case <-quit:
		}
	}()
	return func() {
		signal.Stop(ch)
		close(quit)
	}
}

func (i *Interrupt) Raise()       { i.raised.Store(true) }
func (i *Interrupt) Raised() bool { return i != nil && i.raised.Load() }
