package classify

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	reApacheCombined = regexp.MustCompile(`^\S+ \S+ \S+ \[[^\]]+\] "[A-Z]+ [^\s]+ [^"]+" \d{3} \d+ "[^"]*" "[^"]*"`)
	reSyslogRFC5424  = regexp.MustCompile(`^<\d+>1 \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`)
	reLogfmtKV       = regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*=`)
)

// Guess is the outcome of counting line shapes in a sample.
type Guess struct {
	Format     string // json_lines, logfmt, apache_combined, syslog_rfc5424 or unknown
	View       View
	Confidence float64
}

// Heuristics inspects the last lines offline.
func Heuristics(sample []string) Guess {
	if len(sample) > sampleLines {
		sample = sample[len(sample)-sampleLines:]
	}
	lines := 0
	jsonCount := 0
	logfmtCount := 0
	apacheCount := 0
	syslogCount := 0
	for _, l := range sample {
		s := strings.TrimSpace(l)
		if s == "" {
			continue
		}
		lines++
		if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
			jsonCount++
			continue
		}
		if reApacheCombined.MatchString(s) {
			apacheCount++
			continue
		}
		if reSyslogRFC5424.MatchString(s) {
			syslogCount++
			continue
		}
		if reLogfmtKV.MatchString(s) {
			logfmtCount++
		}
	}
	// Choose highest
	switch {
	case lines == 0:
	case jsonCount > logfmtCount && jsonCount > apacheCount && jsonCount > syslogCount && jsonCount*2 >= lines:
		return Guess{Format: "json_lines", View: View{Kind: JSON}, Confidence: conf(lines, jsonCount)}
	case logfmtCount >= apacheCount && logfmtCount >= syslogCount && logfmtCount > 0 && logfmtCount*2 >= lines:
		return Guess{Format: "logfmt", View: View{Kind: KeyValue}, Confidence: conf(lines, logfmtCount)}
	case apacheCount >= syslogCount && apacheCount > 0:
		return Guess{Format: "apache_combined", View: View{Kind: Plain}, Confidence: conf(lines, apacheCount)}
	case syslogCount > 0:
		return Guess{Format: "syslog_rfc5424", View: View{Kind: Plain}, Confidence: conf(lines, syslogCount)}
	}
	return Guess{Format: "unknown", View: View{Kind: Plain}}
}

func conf(lines, hits int) float64 {
	if lines == 0 {
		return 0
	}
	return float64(hits) / float64(lines)
}

// Heuristic is the offline classifier used without an API key.
type Heuristic struct {
	// Reason is appended to the summary, e.g. why the model is not used.
	Reason string
}

func (h Heuristic) Classify(ctx context.Context, lines []string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	g := Heuristics(lines)
	summary := fmt.Sprintf("Heuristics → Selected view: %s (%s, %.0f%%)", g.View.Name(), g.Format, g.Confidence*100)
	if h.Reason != "" {
		summary += " [" + h.Reason + "]"
	}
	return Result{View: g.View, Summary: summary}, nil
}
