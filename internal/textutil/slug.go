package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vietnameseLetters covers the letters that do not decompose under NFD.
var vietnameseLetters = strings.NewReplacer("đ", "d", "Đ", "D")

var lowerCaser = cases.Lower(language.Und)

// Fold lowercases text and strips combining marks so "Tập" and "tap"
// compare equal. Whitespace is trimmed.
func Fold(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, vietnameseLetters.Replace(value))
	if err != nil {
		stripped = value
	}
	return lowerCaser.String(stripped)
}

// Slugify converts a display title into the lowercase, dash-separated,
// diacritic-free form the upstream uses for slugs. Returns "" when nothing
// alphanumeric remains.
func Slugify(value string) string {
	folded := Fold(value)
	if folded == "" {
		return ""
	}
	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
