package ingest

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nxadm/tail"

	"scry/internal/filter"
	"scry/internal/loggen"
)

type SourceKind string

const (
	SourceStdin   SourceKind = "stdin"
	SourceFile    SourceKind = "file"
	SourceDemo    SourceKind = "demo"
	SourceWaiting SourceKind = "waiting"
)

// ChannelCap bounds how many lines may wait for the session loop before the
// producer blocks.
const ChannelCap = 1000

// WaitingLine is the single line sent when there is no input to read.
const WaitingLine = "Waiting for log input on stdin..."

type Options struct {
	Source SourceKind
	Path   string
	Follow bool
	// Where drops lines for which the expression is not true.
	Where *filter.Expr
	// Stdin overrides os.Stdin.
	Stdin io.Reader
}

// Read starts a producer for the configured source. Lines are never dropped:
// when the channel is full the producer waits. The line channel is closed
// when the source ends or ctx is done; read errors are reported on errs.
func Read(ctx context.Context, opt Options) (<-chan string, <-chan error) {
	out := make(chan string, ChannelCap)
	errs := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errs)
		s := sender{ctx: ctx, out: out, where: opt.Where}

		switch opt.Source {
		case SourceStdin:
			r := opt.Stdin
			if r == nil {
				r = os.Stdin
			}
			readFromReader(s, r, errs)
		case SourceFile:
			if opt.Follow {
				readFromTail(s, opt.Path, errs)
				return
			}
			f, err := os.Open(opt.Path)
			if err != nil {
				errs <- fmt.Errorf("open %s: %w", opt.Path, err)
				return
			}
			defer f.Close()
			readFromReader(s, f, errs)
		case SourceDemo:
			demo(s)
		case SourceWaiting:
			s.send(WaitingLine)
		default:
			errs <- errors.New("unknown source kind")
		}
	}()

	return out, errs
}

type sender struct {
	ctx   context.Context
	out   chan<- string
	where *filter.Expr
}

// send delivers one line, blocking while the channel is full. It returns
// false once ctx is done.
func (s sender) send(line string) bool {
	if !s.where.Match(line) {
		return true
	}
	select {
	case s.out <- line:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func readFromReader(s sender, r io.Reader, errs chan<- error) {
	br := bufio.NewReaderSize(r, 64*1024)
	for {
		raw, err := br.ReadString('\n')
		if raw != "" {
			if !s.send(Normalize(raw)) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				errs <- fmt.Errorf("read input: %w", err)
			}
			return
		}
	}
}

// Normalize strips one trailing line terminator and replaces invalid UTF-8.
func Normalize(raw string) string {
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")
	return strings.ToValidUTF8(raw, "\uFFFD")
}

func readFromTail(s sender, path string, errs chan<- error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
		Poll:      true,
		Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		errs <- fmt.Errorf("follow %s: %w", path, err)
		return
	}
	defer t.Cleanup()
	defer t.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case l, ok := <-t.Lines:
			if !ok {
				return
			}
			if l.Err != nil {
				errs <- l.Err
				return
			}
			if !s.send(Normalize(l.Text)) {
				return
			}
		}
	}
}

const demoInterval = 300 * time.Millisecond

// demo emits a mixed synthetic stream until ctx is done.
func demo(s sender) {
	gen := loggen.New(loggen.Mixed, time.Now().UnixNano())
	ticker := time.NewTicker(demoInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if !s.send(gen.Line()) {
				return
			}
		}
	}
}
