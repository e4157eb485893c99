// Package loggen produces synthetic log lines for demos and manual testing.
package loggen

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

type Format string

const (
	Plain  Format = "plain"
	KV     Format = "kv"
	JSON   Format = "json"
	Apache Format = "apache"
	Mixed  Format = "mixed"
)

// ParseFormat accepts the format names plus a few common aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "text", "txt":
		return Plain, nil
	case "kv", "logfmt":
		return KV, nil
	case "json", "ndjson", "jsonl", "json_lines":
		return JSON, nil
	case "apache", "access":
		return Apache, nil
	case "mixed":
		return Mixed, nil
	}
	return "", fmt.Errorf("unsupported format %q (want plain|kv|json|apache|mixed)", s)
}

// Generator is not safe for concurrent use.
type Generator struct {
	format Format
	rnd    *rand.Rand
	now    func() time.Time
}

func New(format Format, seed int64) *Generator {
	return &Generator{format: format, rnd: rand.New(rand.NewSource(seed)), now: time.Now}
}

func (g *Generator) Line() string {
	f := g.format
	if f == Mixed {
		f = []Format{Plain, KV, JSON, Apache}[g.rnd.Intn(4)]
	}
	switch f {
	case KV:
		return g.kv()
	case JSON:
		return g.json()
	case Apache:
		return g.apache()
	}
	return g.plain()
}

func (g *Generator) plain() string {
	return fmt.Sprintf("[%s] %s %s: %s (req %s)",
		g.now().UTC().Format(time.RFC3339), strings.ToUpper(g.level()), g.pick(services), g.pick(messages), g.hex(8))
}

func (g *Generator) kv() string {
	return fmt.Sprintf(`time=%s level=%s service=%s user=%s action=%s ok=%t latency_ms=%.2f msg="%s"`,
		g.now().UTC().Format(time.RFC3339), g.level(), g.pick(services), g.pick(users), g.pick(actions),
		g.rnd.Intn(2) == 0, 0.5+g.rnd.Float64()*450, g.pick(messages))
}

func (g *Generator) json() string {
	rec := map[string]any{
		"ts":         g.now().UTC().Format(time.RFC3339Nano),
		"level":      g.level(),
		"service":    g.pick(services),
		"msg":        g.pick(messages),
		"request_id": g.hex(12),
		"status":     g.status(),
	}
	if g.rnd.Intn(3) == 0 {
		rec["tags"] = []string{g.pick(services), g.pick(actions)}
	}
	b, _ := json.Marshal(rec)
	return string(b)
}

func (g *Generator) apache() string {
	return fmt.Sprintf(`%d.%d.%d.%d - %s [%s] "%s %s HTTP/1.1" %d %d "-" "%s"`,
		g.rnd.Intn(223)+1, g.rnd.Intn(255), g.rnd.Intn(255), g.rnd.Intn(255),
		g.pick(users), g.now().UTC().Format("02/Jan/2006:15:04:05 -0700"),
		g.pick(methods), g.pick(paths), g.status(), 200+g.rnd.Intn(5000), g.pick(agents))
}

func (g *Generator) pick(from []string) string { return from[g.rnd.Intn(len(from))] }

func (g *Generator) hex(n int) string {
	const digits = "0123456789abcdef"
	b := make([]byte, n)
	for i := range b {
		b[i] = digits[g.rnd.Intn(len(digits))]
	}
	return string(b)
}

// level is weighted towards info.
func (g *Generator) level() string {
	r := g.rnd.Float64()
	switch {
	case r < 0.6:
		return "info"
	case r < 0.8:
		return "debug"
	case r < 0.95:
		return "warn"
	}
	return "error"
}

func (g *Generator) status() int {
	r := g.rnd.Float64()
	switch {
	case r < 0.75:
		return 200
	case r < 0.85:
		return 201
	case r < 0.93:
		return 404
	case r < 0.98:
		return 500
	}
	return 302
}

var (
	users    = []string{"-", "alice", "bob", "carol", "dave", "erin", "frank"}
	services = []string{"api", "worker", "auth", "gateway", "billing"}
	actions  = []string{"login", "logout", "create", "update", "delete", "purchase", "view"}
	methods  = []string{"GET", "POST", "PUT", "PATCH", "DELETE"}
	paths    = []string{"/", "/health", "/login", "/logout", "/api/v1/items", "/static/app.js"}
	messages = []string{
		"user authenticated",
		"request completed",
		"cache miss",
		"cache hit",
		"db query executed",
		"rate limit exceeded",
		"background job started",
		"background job finished",
		"invalid credentials",
		"payload validated",
	}
	agents = []string{
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:125.0) Gecko/20100101 Firefox/125.0",
		"curl/8.2.1",
	}
)
