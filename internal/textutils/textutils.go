// Package textutils provides text cleanup helpers for notification
// messages.
package textutils

import (
	"strings"
	"unicode"
)

// Normalize trims a message and collapses interior whitespace runs to a
// single space, so pattern matching is insensitive to the double spaces
// and stray tabs common in forwarded SMS text.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace {
			b.WriteByte(' ')
			inSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
