package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"scry/internal/loggen"
)

type options struct {
	format   string
	rate     float64
	count    int
	duration time.Duration
	out      string
	seed     int64
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "loggen:", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "loggen",
		Short: "Write a synthetic log stream, e.g. loggen --format kv | scry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := loggen.ParseFormat(o.format)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if o.duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, o.duration)
				defer cancel()
			}
			w := cmd.OutOrStdout()
			if o.out != "" {
				file, err := os.OpenFile(o.out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
				fmt.Fprintf(cmd.ErrOrStderr(), "generating %s logs -> %s at %.2f msg/s\n", f, o.out, o.rate)
			}
			seed := o.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			return run(ctx, w, loggen.New(f, seed), o.rate, o.count)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&o.format, "format", "mixed", "plain|kv|json|apache|mixed")
	fs.Float64Var(&o.rate, "rate", 5, "lines per second; 0 writes as fast as possible")
	fs.IntVar(&o.count, "count", 0, "stop after this many lines (0 = unlimited)")
	fs.DurationVar(&o.duration, "duration", 0, "stop after this long (e.g. 30s)")
	fs.StringVar(&o.out, "out", "", "write to a file instead of stdout")
	fs.Int64Var(&o.seed, "seed", 0, "random seed (0 = time based)")
	return cmd
}

// run writes lines until count is reached or ctx is done. Each line is
// flushed so a reader sees it immediately.
func run(ctx context.Context, w io.Writer, g *loggen.Generator, rate float64, count int) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	var tick <-chan time.Time
	if rate > 0 {
		t := time.NewTicker(max(time.Duration(float64(time.Second)/rate), time.Microsecond))
		defer t.Stop()
		tick = t.C
	}
	for n := 0; count == 0 || n < count; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}
		bw.WriteString(g.Line())
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		if err := bw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
