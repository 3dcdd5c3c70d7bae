package app

import (
	"regexp"
	"strings"
)

// Span attributes get collapsed whitespace and a hard length cap so bulk
// statements do not bloat trace storage.
const maxTracedQueryLength = 512

var queryWhitespace = regexp.MustCompile(`\s+`)

func formatDBQueryForTrace(query string) string {
	normalized := queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) > maxTracedQueryLength {
		return normalized[:maxTracedQueryLength] + "..."
	}

	return normalized
}
