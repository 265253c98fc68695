package recognizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// cleanText normalizes decoded text to NFC and strips control and
// zero-width characters that models occasionally emit on noisy crops.
// Interior whitespace is preserved, outer whitespace trimmed.
func cleanText(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case isZeroWidth(r):
		case unicode.IsControl(r) && r != '\t':
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func isZeroWidth(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\uFEFF':
		return true
	}
	return false
}
