package cli

import (
	"bytes"
	"strings"
	"testing"

	"scry/internal/classify"
	"scry/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "scry ") || !strings.Contains(out, "go1") {
		t.Fatalf("version output: %q", out)
	}
}

func TestKeySetAndDelete(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("OPENAI_API_KEY", "")

	out, err := execute(t, "key", "set", "sk-test")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "API key saved to") {
		t.Fatalf("set output: %q", out)
	}
	if got := config.Default().OpenAIKey(); got != "sk-test" {
		t.Fatalf("stored key %q", got)
	}
	if _, err := execute(t, "key", "delete"); err != nil {
		t.Fatal(err)
	}
	if got := config.Default().OpenAIKey(); got != "" {
		t.Fatalf("key still present: %q", got)
	}
	if _, err := execute(t, "key", "set"); err == nil {
		t.Fatalf("set without a key should fail")
	}
}

func TestInvalidFlagsFailBeforeStarting(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, args := range [][]string{
		{"--capacity", "0"},
		{"--follow"},
		{"unexpected-arg"},
	} {
		if _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestNewClassifier(t *testing.T) {
	cfg := config.Default()
	c, api, ready := newClassifier(cfg, "", nil)
	if _, ok := c.(classify.Heuristic); !ok || api != "API: ✗" || ready {
		t.Fatalf("no key: %T %q %v", c, api, ready)
	}
	c, api, ready = newClassifier(cfg, "sk-x", nil)
	if o, ok := c.(*classify.OpenAI); !ok || o.Model() != classify.DefaultModel || api != "API: ✓" || !ready {
		t.Fatalf("with key: %T %q %v", c, api, ready)
	}
	cfg.Offline = true
	if _, api, _ := newClassifier(cfg, "sk-x", nil); api != "offline" {
		t.Fatalf("offline label %q", api)
	}
}
