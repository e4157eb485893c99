package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var levelTags = [...]string{Debug: "DEBUG", Info: "INFO", Warn: "WARN", Error: "ERROR"}

// maxLines is how many lines the in-memory ring keeps for the log overlay.
const maxLines = 500

var (
	mu    sync.Mutex
	level = Info
	ring  = make([]string, maxLines)
	head  int // next slot to write
	count int
	// sink mirrors every line. It is nil by default because stderr shares
	// the terminal with the viewer.
	sink io.Writer
)

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

// SetOutput mirrors log lines to w; nil keeps them in memory only.
func SetOutput(w io.Writer) { mu.Lock(); sink = w; mu.Unlock() }

// SetLevelFromEnv reads SCRY_LOG_LEVEL, SCRY_LOG_STDERR and SCRY_LOG_FILE.
// A log file wins over stderr.
func SetLevelFromEnv() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SCRY_LOG_LEVEL"))) {
	case "debug":
		SetLevel(Debug)
	case "info":
		SetLevel(Info)
	case "warn", "warning":
		SetLevel(Warn)
	case "error":
		SetLevel(Error)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("SCRY_LOG_STDERR"))); v != "" && v != "0" && v != "false" && v != "no" {
		SetOutput(os.Stderr)
	}
	if path := os.Getenv("SCRY_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			Warnf("open log file: %v", err)
			return
		}
		SetOutput(f)
	}
}

func Debugf(format string, a ...any) { logf(Debug, format, a...) }
func Infof(format string, a ...any)  { logf(Info, format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, format, a...) }
func Errorf(format string, a ...any) { logf(Error, format, a...) }

func logf(l Level, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	line := fmt.Sprintf("%s %-5s %s", ts, levelTags[l], fmt.Sprintf(format, a...))
	ring[head] = line
	head = (head + 1) % maxLines
	if count < maxLines {
		count++
	}
	if sink != nil {
		fmt.Fprintln(sink, line)
	}
}

// Lines returns a copy of the retained log lines, oldest first.
func Lines() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, 0, count)
	start := (head - count + maxLines) % maxLines
	for i := 0; i < count; i++ {
		out = append(out, ring[(start+i)%maxLines])
	}
	return out
}

func Dump() string { return strings.Join(Lines(), "\n") }
