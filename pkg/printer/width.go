package printer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Width returns the number of columns s occupies: its character count after
// NFC normalization, not counting combining marks.
func Width(s string) int {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return len(s)
	}

	n := 0
	for _, r := range norm.NFC.String(s) {
		if unicode.In(r, unicode.Mn, unicode.Me) {
			continue
		}
		n++
	}
	return n
}
