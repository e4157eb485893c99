package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const maxLabelLen = 60

// Describe returns the status-bar label for where lines come from.
func Describe(ctx context.Context, opt Options) string {
	switch opt.Source {
	case SourceWaiting:
		return "Waiting for input..."
	case SourceDemo:
		return "Demo stream"
	case SourceFile:
		verb := "Reading"
		if opt.Follow {
			verb = "Following"
		}
		return fmt.Sprintf("%s: %s", verb, shorten(opt.Path))
	}
	if cmd, err := parentCommand(ctx, os.Getppid()); err == nil {
		if c := cleanCommand(cmd); c != "" {
			return "Reading from: " + c
		}
	}
	return "Reading from stdin"
}

// parentCommand reads the first arguments of process pid from /proc, falling
// back to ps where /proc is unavailable.
func parentCommand(ctx context.Context, pid int) (string, error) {
	if b, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid)); err == nil {
		var parts []string
		for _, p := range bytes.Split(b, []byte{0}) {
			if len(p) == 0 {
				continue
			}
			parts = append(parts, string(p))
			if len(parts) == 3 {
				break
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " "), nil
		}
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, "ps", "-p", fmt.Sprint(pid), "-o", "command=").Output()
	if err != nil {
		return "", fmt.Errorf("ps %d: %w", pid, err)
	}
	cmd := strings.TrimSpace(string(out))
	if cmd == "" {
		return "", fmt.Errorf("no command for pid %d", pid)
	}
	return cmd, nil
}

// cleanCommand unwraps sh -c '...' and shortens the result.
func cleanCommand(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if strings.HasPrefix(cmd, "sh -c ") || strings.HasPrefix(cmd, "/bin/sh -c ") {
		start, end := strings.IndexByte(cmd, '\''), strings.LastIndexByte(cmd, '\'')
		if start >= 0 && end > start {
			cmd = cmd[start+1 : end]
		}
	}
	return shorten(cmd)
}

func shorten(s string) string {
	r := []rune(s)
	if len(r) > maxLabelLen {
		return string(r[:maxLabelLen-3]) + "..."
	}
	return s
}
