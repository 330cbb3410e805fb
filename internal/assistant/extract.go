package assistant

import (
	"regexp"
	"strings"
)

// fencedBlockPattern matches the first fenced code block, capturing an
// optional language tag and the body
var fencedBlockPattern = regexp.MustCompile("(?s)```([a-zA-Z0-9+-]*)\n?(.*?)```")

// ExtractCode pulls the first fenced code block out of a model response.
// The language tag, if any, is discarded. Returns false when the response
// contains no fenced block.
func ExtractCode(response string) (string, bool) {
	match := fencedBlockPattern.FindStringSubmatch(response)
	if match == nil {
		return "", false
	}

	code := strings.TrimSpace(match[2])
	if code == "" {
		return "", false
	}

	return code, true
}
