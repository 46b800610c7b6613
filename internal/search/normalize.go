package search

import (
	"regexp"
	"strings"
)

// noiseRun matches runs of characters other than ASCII letters and digits,
// whitespace, hyphens and quote marks.
var noiseRun = regexp.MustCompile(`[^A-Za-z0-9\s\-'"]+`)

// Normalize strips punctuation and noise from a free-text query and collapses
// whitespace. Empty input yields empty output.
func Normalize(raw string) string {
	cleaned := noiseRun.ReplaceAllString(raw, " ")
	return strings.Join(strings.Fields(cleaned), " ")
}
