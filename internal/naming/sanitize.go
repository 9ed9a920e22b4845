// Package naming turns AI-generated image descriptions into safe filename
// stems. It owns the outbound call to the naming service, including rate
// limiting, retry with backoff, and response sanitization.
package naming

import (
	"regexp"
	"strings"
)

var (
	invalidChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
	separatorRun = regexp.MustCompile(`[_-]+`)
)

// minStemLength is the shortest sanitized stem considered usable; anything
// shorter falls back to the original filename.
const minStemLength = 3

// Sanitize normalizes raw model output into a filename stem:
// trims whitespace and one layer of surrounding quotes, replaces spaces with
// underscores, strips everything outside [a-zA-Z0-9_-], collapses runs of
// separators into a single underscore, trims edge separators and truncates to
// maxLength. Results shorter than three characters return fallback unchanged.
//
// Pure and deterministic; sanitizing twice gives the same answer.
func Sanitize(raw string, maxLength int, fallback string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)

	s = strings.ReplaceAll(s, " ", "_")
	s = invalidChars.ReplaceAllString(s, "")
	s = separatorRun.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_-")

	if len(s) > maxLength {
		s = strings.TrimRight(s[:maxLength], "_-")
	}

	if len(s) < minStemLength {
		return fallback
	}
	return s
}
