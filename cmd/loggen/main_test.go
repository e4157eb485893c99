package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"scry/internal/loggen"
)

func TestRunCount(t *testing.T) {
	var buf bytes.Buffer
	if err := run(context.Background(), &buf, loggen.New(loggen.KV, 1), 0, 5); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "time=") {
			t.Fatalf("not a kv line: %q", l)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := run(ctx, &buf, loggen.New(loggen.Plain, 1), 1000, 0); err != nil {
		t.Fatal(err)
	}
}

func TestCommandRejectsUnknownFormat(t *testing.T) {
	cmd := newCommand()
	cmd.SetArgs([]string{"--format", "xml", "--count", "1"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error")
	}
}
