// Package slug derives URL-safe store slugs from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Pattern is the accepted slug shape: lowercase ASCII words joined by single hyphens.
const Pattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

var validRe = regexp.MustCompile(Pattern)

// MaxLen bounds generated slugs.
const MaxLen = 64

// FromName folds accents, lowercases, and joins the remaining
// alphanumeric runs with hyphens. "Café da Maria!" becomes "cafe-da-maria".
// Returns "" if name has no ASCII letters or digits after folding.
func FromName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	s := b.String()
	if len(s) > MaxLen {
		s = strings.TrimRight(s[:MaxLen], "-")
	}
	return s
}

// Valid reports whether s matches Pattern.
func Valid(s string) bool {
	return validRe.MatchString(s)
}
