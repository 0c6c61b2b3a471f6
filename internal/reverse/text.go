package reverse

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidText is returned by the rune-based strategies for input that is
// not valid UTF-8.
var ErrInvalidText = errors.New("input is not valid UTF-8 text")

// reverseRunes returns s with its runes in reverse order.
func reverseRunes(s string) string {
	runes := []rune(s)
	reverseRuneSlice(runes)
	return string(runes)
}

func reverseRuneSlice(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}

// alignToRuneStart returns how many leading bytes of b are UTF-8
// continuation bytes. It returns 0 when b holds no rune start at all, so
// callers always make progress.
func alignToRuneStart(b []byte) int {
	for i := range b {
		if utf8.RuneStart(b[i]) {
			return i
		}
	}
	return 0
}

// isStripSpace reports the characters a faithful chunk strip removes: Unicode
// white space plus the ASCII file, group, record and unit separators.
func isStripSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// stripChunk trims leading and trailing isStripSpace characters.
func stripChunk(s string) string {
	return strings.TrimFunc(s, isStripSpace)
}

// trimTerminator drops one trailing "\n" or "\r\n".
func trimTerminator(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
		if n := len(s); n > 0 && s[n-1] == '\r' {
			s = s[:n-1]
		}
	}
	return s
}
