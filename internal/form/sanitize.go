package form

import (
	"strings"
	"unicode/utf8"
)

// MaxFieldLength bounds every free-text field after sanitization.
const MaxFieldLength = 1000

// Sanitize strips line breaks from a free-text field and caps its length.
// CR and LF become spaces so a submission can never smuggle extra headers
// or lines into the outbound email. Sanitizing an already-clean string
// returns it unchanged.
func Sanitize(v string) string {
	v = strings.Map(func(r rune) rune {
		if r == '\r' || r == '\n' {
			return ' '
		}
		return r
	}, v)
	if utf8.RuneCountInString(v) > MaxFieldLength {
		v = string([]rune(v)[:MaxFieldLength])
	}
	return v
}
