package loggen

import (
	"testing"
	"time"

	"scry/internal/classify"
	"scry/internal/parse"
)

func sample(f Format, n int) []string {
	g := New(f, 1)
	out := make([]string, n)
	for i := range out {
		out[i] = g.Line()
	}
	return out
}

func TestFormatsAreRecognized(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JSON, "json_lines"},
		{KV, "logfmt"},
		{Apache, "apache_combined"},
		{Plain, "unknown"},
	}
	for _, tt := range tests {
		if got := classify.Heuristics(sample(tt.format, 50)).Format; got != tt.want {
			t.Errorf("%s: heuristics said %s, want %s", tt.format, got, tt.want)
		}
	}
}

func TestJSONLinesParse(t *testing.T) {
	for _, l := range sample(JSON, 20) {
		v, ok := parse.JSONValue(l)
		if !ok {
			t.Fatalf("invalid JSON: %s", l)
		}
		if _, ok := v.(map[string]any)["level"]; !ok {
			t.Fatalf("missing level: %s", l)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, b := New(Mixed, 7), New(Mixed, 7)
	fixed := a.now()
	a.now = func() time.Time { return fixed }
	b.now = a.now
	for i := 0; i < 20; i++ {
		if x, y := a.Line(), b.Line(); x != y {
			t.Fatalf("line %d differs:\n%s\n%s", i, x, y)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"logfmt": KV, "NDJSON": JSON, " text ": Plain, "mixed": Mixed} {
		if got, err := ParseFormat(in); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Errorf("expected error for xml")
	}
}
