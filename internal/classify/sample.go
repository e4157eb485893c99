package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"scry/internal/util"
)

const (
	sampleLines   = 100
	sampleLineLen = 500
	sampleMaxLen  = 10000
)

// Sample prepares the most recent lines for a remote classifier: at most 100
// lines, each sanitized, cut at 500 characters and redacted, with the whole
// text capped at 10000 bytes.
func Sample(lines []string) string {
	if len(lines) > sampleLines {
		lines = lines[len(lines)-sampleLines:]
	}
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = util.RedactPII(util.Sanitize(l, sampleLineLen))
	}
	joined := strings.Join(parts, "\n")
	if len(joined) <= sampleMaxLen {
		return joined
	}
	cut := sampleMaxLen
	for cut > 0 && !utf8.RuneStart(joined[cut]) {
		cut--
	}
	return fmt.Sprintf("%s...\n[truncated %d chars]", joined[:cut], len(joined)-cut)
}
