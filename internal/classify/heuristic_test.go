package classify

import (
	"bufio"
	"context"
	"os"
	"strings"
	"testing"
)

func readLines(path string, n int) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	out := []string{}
	for s.Scan() {
		out = append(out, s.Text())
		if len(out) >= n {
			break
		}
	}
	return out
}

func TestHeuristics(t *testing.T) {
	tests := []struct {
		file   string
		format string
		view   Kind
	}{
		{"testdata/json_lines.ndjson", "json_lines", JSON},
		{"testdata/logfmt.log", "logfmt", KeyValue},
		{"testdata/apache.log", "apache_combined", Plain},
		{"testdata/plain.log", "unknown", Plain},
	}
	for _, tt := range tests {
		lines := readLines(tt.file, 10)
		if len(lines) == 0 {
			t.Fatalf("no fixture lines in %s", tt.file)
		}
		g := Heuristics(lines)
		if g.Format != tt.format || g.View.Kind != tt.view {
			t.Errorf("%s: got %s/%s, want %s", tt.file, g.Format, g.View.Name(), tt.format)
		}
	}
}

func TestHeuristicsEmpty(t *testing.T) {
	g := Heuristics([]string{"", "  "})
	if g.View.Kind != Plain || g.Confidence != 0 {
		t.Fatalf("unexpected guess: %+v", g)
	}
}

func TestHeuristicClassifier(t *testing.T) {
	res, err := Heuristic{Reason: "offline"}.Classify(context.Background(), readLines("testdata/json_lines.ndjson", 10))
	if err != nil {
		t.Fatal(err)
	}
	if res.View.Kind != JSON {
		t.Fatalf("view: %s", res.View.Name())
	}
	if !strings.Contains(res.Summary, "Selected view: Json") || !strings.HasSuffix(res.Summary, "[offline]") {
		t.Fatalf("summary: %q", res.Summary)
	}
}
