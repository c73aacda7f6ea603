package document

import (
	"regexp"
	"strings"
)

var (
	newlineRuns = regexp.MustCompile(`(\n\s*)+\n`)
	spaceRuns   = regexp.MustCompile(`[ \t]+`)
	nonASCII    = regexp.MustCompile(`[^A-Za-z0-9\s.,!?':;"()-]`)
)

// Normalize cleans extracted text: runs of two or more newlines (with any
// interleaved whitespace) collapse to a single newline, runs of spaces and
// tabs collapse to a single space, and leading/trailing whitespace is
// trimmed. Normalize is idempotent.
func Normalize(text string) string {
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizeStrict additionally strips every character outside
// [A-Za-z0-9\s.,!?':;"()-].
//
// Deprecated: the filter destroys all non-Latin-script text and is kept only
// for callers that still depend on the old behavior. The pipeline uses
// Normalize, which preserves multilingual content.
func NormalizeStrict(text string) string {
	return Normalize(nonASCII.ReplaceAllString(text, ""))
}
