package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scry/internal/model"
)

func TestToFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	rows := []model.Entry{{Index: 0, Line: "a=1"}, {Index: 2, Line: "c=1"}}
	if err := ToFile(path, FormatText, rows); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "a=1\nc=1\n" {
		t.Fatalf("got %q", b)
	}
}

func TestToFileNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	rows := []model.Entry{{Index: 3, Line: "level=warn n=2"}, {Index: 4, Line: "plain"}}
	if err := ToFile(path, FormatNDJSON, rows); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: %q", lines)
	}
	if lines[0] != `{"index":3,"raw":"level=warn n=2","fields":{"level":"warn","n":2}}` {
		t.Fatalf("first: %s", lines[0])
	}
	if lines[1] != `{"index":4,"raw":"plain"}` {
		t.Fatalf("second: %s", lines[1])
	}
}

func TestToFileEmpty(t *testing.T) {
	if err := ToFile(filepath.Join(t.TempDir(), "x"), FormatText, nil); err == nil {
		t.Fatalf("expected error for empty export")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ndjson: %v %v", f, err)
	}
	if _, err := ParseFormat("csv"); err == nil {
		t.Fatalf("expected error for csv")
	}
}
