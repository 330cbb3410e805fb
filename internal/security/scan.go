package security

import (
	"fmt"
	"regexp"

	"github.com/genguard/genguard/internal/audit"
)

// dangerousPattern pairs a compiled regex with a human-readable risk
// description
type dangerousPattern struct {
	pattern     *regexp.Regexp
	source      string
	description string
}

// Patterns checked by ScanContent. This is a textual tripwire, not static
// analysis: it can flag a pattern inside a comment or string literal and it
// misses equivalent constructs expressed differently. Findings are advisory;
// the caller decides whether they block a write.
var dangerousPatterns = compilePatterns()

func compilePatterns() []dangerousPattern {
	table := []struct {
		source      string
		description string
	}{
		{`os\.system\(`, "Direct system command execution"},
		{`subprocess\.`, "Subprocess execution"},
		{`eval\(`, "Code evaluation"},
		{`exec\(`, "Code execution"},
		{`__import__\(`, "Dynamic imports"},
		{`open\(.*,.*w.*\)`, "File write operations"},
		{`requests\.`, "Network requests"},
		{`socket\.`, "Socket operations"},
	}

	patterns := make([]dangerousPattern, 0, len(table))
	for _, e := range table {
		patterns = append(patterns, dangerousPattern{
			pattern:     regexp.MustCompile(e.source),
			source:      e.source,
			description: e.description,
		})
	}
	return patterns
}

// ScanContent scans content for potentially dangerous code patterns and
// returns one finding per matched pattern. An empty result means no pattern
// matched. ScanContent never fails; each match is also recorded as a
// CONTENT_SCAN audit event.
func (v *Validator) ScanContent(content string) []string {
	var concerns []string

	for _, dp := range dangerousPatterns {
		if dp.pattern.MatchString(content) {
			concerns = append(concerns, fmt.Sprintf("Found potentially dangerous pattern: %s", dp.description))
			v.sink.LogEvent(audit.EventContentScan, fmt.Sprintf("Found pattern: %s", dp.source))
		}
	}

	return concerns
}
