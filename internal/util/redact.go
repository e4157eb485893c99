package util

import "regexp"

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reToken = regexp.MustCompile(`(?i)((?:api|secret|token|key|password)[=:]\s*)[A-Za-z0-9_-]{8,}`)
)

// RedactPII masks e-mail addresses and credential-looking values before log
// samples leave the machine.
func RedactPII(s string) string {
	s = reEmail.ReplaceAllString(s, "[redacted-email]")
	s = reToken.ReplaceAllString(s, "${1}[redacted]")
	return s
}
