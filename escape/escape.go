// Package escape converts between literal text and regex-safe text.
//
// Escape and Unescape are inverses: for every string s,
// Unescape(Escape(s)) == s. Unescape only strips a backslash that precedes
// one of the special characters, so regex escapes such as `\S` or `\d` pass
// through it untouched.
package escape

import "github.com/coregx/coregex"

// Special lists the bytes that Escape prefixes with a backslash.
const Special = `\.+*?()|[]{}^$`

// Escape returns a string that escapes all regular expression metacharacters
// inside the argument text; the returned string is a regular expression
// matching the literal text. The escaped set is Special, the same set
// coregex.QuoteMeta escapes.
//
// Example:
//
//	escape.Escape("a.b(c)") // `a\.b\(c\)`
func Escape(s string) string {
	return coregex.QuoteMeta(s)
}

// Unescape reverses Escape.
//
// A backslash followed by a special character is replaced by that character.
// Any other backslash is copied as is, including a trailing one.
//
// Example:
//
//	escape.Unescape(`a\.b\(c\)`) // "a.b(c)"
//	escape.Unescape(`x(\S+)`)    // `x(\S+)`
func Unescape(s string) string {
	n := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '\\' && IsSpecial(s[i+1]) {
			n++
			i++
		}
	}

	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)-n)
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && IsSpecial(s[i+1]) {
			i++
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

// IsSpecial reports whether c is escaped by Escape.
func IsSpecial(c byte) bool {
	for i := 0; i < len(Special); i++ {
		if c == Special[i] {
			return true
		}
	}
	return false
}
