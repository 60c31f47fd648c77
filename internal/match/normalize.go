package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// labelTokens are answer-label words stripped before comparison. Expected
// answers from the generator often carry labels like "vertical asymptote:"
// in front of the actual value; learners rarely type them.
var labelTokens = []string{
	"vertical asymptote",
	"horizontal asymptote",
	"asymptote",
	"and",
	":",
}

// stripDiacritics removes combining marks after NFD decomposition.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize folds a free-text answer into canonical comparison form:
// lowercase, diacritics removed, $ math delimiters and label tokens
// stripped, all whitespace removed.
func Normalize(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, "$", "")
	for _, tok := range labelTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	return strings.Join(strings.Fields(s), "")
}

// normalizePart normalizes one comma-separated part of a multi-part answer.
// Unlike Normalize it keeps label words out of scope: parts are compared
// after lowercase, $ stripping, and whitespace removal only.
func normalizePart(s string) string {
	s = strings.ToLower(s)
	if folded, _, err := transform.String(stripDiacritics, s); err == nil {
		s = folded
	}
	s = strings.ReplaceAll(s, "$", "")
	return strings.Join(strings.Fields(s), "")
}
