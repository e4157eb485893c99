package logx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	t.Setenv("SCRY_LOG_LEVEL", "warn")
	SetLevelFromEnv()
	defer SetLevel(Info)

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	out := Dump()
	if strings.Contains(out, "hidden 1") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN  shown 2") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestRingKeepsNewest(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Info)
	for i := 0; i < maxLines+10; i++ {
		Debugf("line %d", i)
	}
	lines := Lines()
	if len(lines) != maxLines {
		t.Fatalf("len: %d", len(lines))
	}
	if !strings.HasSuffix(lines[len(lines)-1], "line 509") {
		t.Fatalf("newest line: %q", lines[len(lines)-1])
	}
}

func TestOutputMirrorsLines(t *testing.T) {
	var b strings.Builder
	SetOutput(&b)
	defer SetOutput(nil)
	Errorf("boom %s", "x")
	if !strings.Contains(b.String(), "ERROR boom x\n") {
		t.Fatalf("sink: %q", b.String())
	}
}

func TestLogFileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scry.log")
	t.Setenv("SCRY_LOG_FILE", path)
	SetLevelFromEnv()
	defer SetOutput(nil)
	Warnf("to file")
	b, err := os.ReadFile(path)
	if err != nil || !strings.Contains(string(b), "WARN  to file") {
		t.Fatalf("log file: %q %v", b, err)
	}
}
