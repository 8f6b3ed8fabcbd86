package docx

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// illFormed drops bytes that are not part of a valid UTF-8 sequence.
// runes.Remove sees such bytes as utf8.RuneError.
var illFormed = runes.Predicate(func(r rune) bool { return r == utf8.RuneError })

// sanitizeUTF8 returns s with ill-formed UTF-8 removed.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	out, _, err := transform.String(runes.Remove(illFormed), s)
	if err != nil {
		return strings.ToValidUTF8(s, "")
	}
	return out
}
