package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"scry/internal/filter"
)

func collect(t *testing.T, lines <-chan string, errs <-chan error) ([]string, error) {
	t.Helper()
	var out []string
	timeout := time.After(5 * time.Second)
	for {
		select {
		case l, ok := <-lines:
			if !ok {
				return out, <-errs
			}
			out = append(out, l)
		case <-timeout:
			t.Fatalf("timed out after %d lines", len(out))
		}
	}
}

func TestReadStdinSplitsLines(t *testing.T) {
	in := "first\r\n\nthird\xff\nlast"
	lines, errs := Read(context.Background(), Options{Source: SourceStdin, Stdin: strings.NewReader(in)})
	got, err := collect(t, lines, errs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"first", "", "third\uFFFD", "last"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadLongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	lines, errs := Read(context.Background(), Options{Source: SourceStdin, Stdin: strings.NewReader(long + "\nok\n")})
	got, err := collect(t, lines, errs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != long || got[1] != "ok" {
		t.Fatalf("unexpected lines: %d", len(got))
	}
}

func TestReadBlocksInsteadOfDropping(t *testing.T) {
	const n = ChannelCap*2 + 17
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("line\n")
	}
	lines, errs := Read(context.Background(), Options{Source: SourceStdin, Stdin: strings.NewReader(b.String())})
	// let the producer fill the channel before consuming
	deadline := time.Now().Add(2 * time.Second)
	for len(lines) < ChannelCap && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(lines) != ChannelCap {
		t.Fatalf("expected a full channel, got %d", len(lines))
	}
	got, err := collect(t, lines, errs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != n {
		t.Fatalf("got %d lines, want %d", len(got), n)
	}
}

func TestReadWhere(t *testing.T) {
	where, err := filter.NewExpr(`level == "error"`)
	if err != nil {
		t.Fatal(err)
	}
	in := "level=info msg=a\nlevel=error msg=b\nplain\n{\"level\":\"error\"}\n"
	lines, errs := Read(context.Background(), Options{Source: SourceStdin, Stdin: strings.NewReader(in), Where: where})
	got, err := collect(t, lines, errs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"level=error msg=b", `{"level":"error"}`}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	lines, errs := Read(context.Background(), Options{Source: SourceFile, Path: path})
	got, err := collect(t, lines, errs)
	if err != nil || !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("got %q err %v", got, err)
	}
}

func TestReadMissingFile(t *testing.T) {
	lines, errs := Read(context.Background(), Options{Source: SourceFile, Path: filepath.Join(t.TempDir(), "nope")})
	_, err := collect(t, lines, errs)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestReadWaiting(t *testing.T) {
	lines, errs := Read(context.Background(), Options{Source: SourceWaiting})
	got, err := collect(t, lines, errs)
	if err != nil || !reflect.DeepEqual(got, []string{WaitingLine}) {
		t.Fatalf("got %q err %v", got, err)
	}
}

func TestReadStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines, errs := Read(ctx, Options{Source: SourceDemo})
	cancel()
	if _, err := collect(t, lines, errs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCleanCommand(t *testing.T) {
	tests := []struct{ in, want string }{
		{"sh -c 'tail -f /var/log/syslog'", "tail -f /var/log/syslog"},
		{"kubectl logs -f api", "kubectl logs -f api"},
		{strings.Repeat("a", 70), strings.Repeat("a", 57) + "..."},
	}
	for _, tt := range tests {
		if got := cleanCommand(tt.in); got != tt.want {
			t.Errorf("cleanCommand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()
	if got := Describe(ctx, Options{Source: SourceWaiting}); got != "Waiting for input..." {
		t.Errorf("waiting: %q", got)
	}
	if got := Describe(ctx, Options{Source: SourceFile, Path: "/tmp/x.log", Follow: true}); got != "Following: /tmp/x.log" {
		t.Errorf("file: %q", got)
	}
	if got := Describe(ctx, Options{Source: SourceStdin}); !strings.HasPrefix(got, "Reading from") {
		t.Errorf("stdin: %q", got)
	}
}
