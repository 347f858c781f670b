package extract

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// decodeLegacy recovers readable runs from a legacy Word binary: the bytes are read as
// Latin-1, everything but tab, newline, carriage return and printable ASCII becomes a
// space, and whitespace runs collapse to one space.
func decodeLegacy(b []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	cleaned := strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' || (r >= 0x20 && r <= 0x7E) {
			return r
		}
		return ' '
	}, string(decoded))
	return strings.Join(strings.Fields(cleaned), " ")
}
