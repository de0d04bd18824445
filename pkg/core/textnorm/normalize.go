// Package textnorm canonicalizes raw chat text before extraction.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	// Unicode dash/minus variants and typographic noise users paste from phones
	punctReplacer = strings.NewReplacer(
		"–", "-", // en dash
		"—", "-", // em dash
		"―", "-", // horizontal bar
		"−", "-", // minus sign
		"‐", "-", // hyphen
		"…", " ", // ellipsis
		" ", " ", // non-breaking space
	)

	// variation selectors and the zero-width joiner ride along with emoji
	symbolRE     = regexp.MustCompile(`[\p{So}\p{Sk}\p{Sc}\p{Sm}\x{FE00}-\x{FE0F}\x{200D}]+`)
	horizWSRE    = regexp.MustCompile(`[ \t\x0B\f\r]+`)
	aroundLineRE = regexp.MustCompile(`\s*\n\s*`)
)

// Normalize canonicalizes raw message text. Line breaks are preserved because
// later place extraction works line by line; everything else (decorative
// symbols, emoji, whitespace runs) collapses to single spaces. Normalize is
// idempotent and never fails; empty input yields an empty string.
func Normalize(text string) string {
	cleaned := punctReplacer.Replace(text)

	cleaned = symbolRE.ReplaceAllString(cleaned, " ")
	cleaned = horizWSRE.ReplaceAllString(cleaned, " ")
	cleaned = aroundLineRE.ReplaceAllString(cleaned, "\n")

	return strings.TrimSpace(cleaned)
}

// Lines splits normalized text into trimmed non-blank lines
func Lines(normalized string) []string {
	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Flatten lowercases text and strips everything except letters and digits,
// collapsing the result to single-space separated tokens. Used wherever two
// noisy strings need to be compared loosely (stop-word lookups, place scoring).
func Flatten(text string) string {
	return strings.TrimSpace(nonAlnumRE.ReplaceAllString(strings.ToLower(text), " "))
}

var nonAlnumRE = regexp.MustCompile(`[^\p{L}\p{N}]+`)
