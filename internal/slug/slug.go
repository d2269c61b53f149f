// Package slug converts page titles and URL paths into file-name-safe slugs.
package slug

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLength bounds slug length so file names stay portable.
const maxLength = 80

// Make converts s into a lowercase hyphen-separated slug. Runs of
// non-alphanumeric characters collapse into a single hyphen. An input
// that yields nothing (empty string, "/") becomes "index".
func Make(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if len(out) > maxLength {
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(out[cut]) {
			cut--
		}
		out = strings.Trim(out[:cut], "-")
	}
	if out == "" {
		return "index"
	}
	return out
}
