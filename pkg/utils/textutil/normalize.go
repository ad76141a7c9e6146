// Package textutil provides the text normalization used when matching
// free-form labels from the input tables: Spanish headers and weekday names
// arrive with inconsistent accents, casing and separators.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldDiacritics decomposes characters and strips combining marks, so that
// "Miércoles" and "Miercoles" normalize to the same token.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases the input, removes diacritics, replaces "/" and "-"
// with spaces and collapses runs of whitespace. It is the canonical form for
// all fuzzy comparisons (column headers, team names, weekday tokens).
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}

	s = strings.NewReplacer("/", " ", "-", " ").Replace(s)

	return strings.Join(strings.Fields(s), " ")
}
