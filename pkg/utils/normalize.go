package utils

import (
	"regexp"
	"strings"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeUsername canonicalizes a raw username: trim + case-fold.
// Every boundary that accepts an identity applies this exactly once;
// nothing downstream re-normalizes.
func NormalizeUsername(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeQuery lowercases and collapses whitespace for consistent
// prefix comparisons against the lowercase name column.
func NormalizeQuery(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	return whitespaceRe.ReplaceAllString(lowered, " ")
}
