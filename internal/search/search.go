// Package search normalizes text so stock filtering can be case- and
// accent-insensitive while still running as a plain substring match in SQL.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips diacritics so "Écran" and "ecran"
// compare equal. Stored field values and incoming queries both pass through
// here; matching then reduces to LIKE on the normalized column.
func Normalize(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
