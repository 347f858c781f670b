// Package display holds helpers for user-facing strings.
package display

import "strings"

// MaxLength is the default cap applied by Sanitize.
const MaxLength = 500

var unsafe = strings.NewReplacer(
	"\x00", "", "\x01", "", "\x02", "", "\x03", "", "\x04", "", "\x05", "", "\x06", "", "\x07", "", "\x08", "",
	"\x0b", "", "\x0c", "",
	"\x0e", "", "\x0f", "", "\x10", "", "\x11", "", "\x12", "", "\x13", "", "\x14", "", "\x15", "",
	"\x16", "", "\x17", "", "\x18", "", "\x19", "", "\x1a", "", "\x1b", "", "\x1c", "", "\x1d", "",
	"\x1e", "", "\x1f", "", "\x7f", "",
	"\u2028", "", "\u2029", "", "\ufeff", "",
)

// Sanitize strips control characters (tab, LF and CR survive) and truncates to maxLength
// runes followed by an ellipsis. maxLength <= 0 uses MaxLength.
func Sanitize(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = MaxLength
	}
	s = unsafe.Replace(s)
	r := []rune(s)
	if len(r) > maxLength {
		return string(r[:maxLength]) + "…"
	}
	return s
}

// MaskKey hides all but the edges of a credential, e.g. "sk-...wxyz".
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:3] + "..." + key[len(key)-4:]
}
