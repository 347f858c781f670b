package parser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// rtfDestinations are groups whose content is never document text.
var rtfDestinations = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true, "pict": true,
	"object": true, "header": true, "footer": true, "headerl": true, "headerr": true,
	"footerl": true, "footerr": true, "listtable": true, "listoverridetable": true,
	"rsidtbl": true, "generator": true, "xmlnstbl": true, "themedata": true,
	"colorschememapping": true, "datastore": true, "latentstyles": true, "fldinst": true,
	"filetbl": true, "revtbl": true, "pgdsctbl": true,
}

var rtfSymbols = map[string]string{
	"par": "\n", "line": "\n", "sect": "\n", "page": "\n", "row": "\n",
	"tab": "\t", "cell": "\t",
	"emdash": "—", "endash": "–", "bullet": "•",
	"lquote": "‘", "rquote": "’", "ldblquote": "“", "rdblquote": "”",
	"emspace": " ", "enspace": " ", "qmspace": " ",
}

type rtfState struct {
	skip bool
	uc   int
}

// parseRTF strips control words and groups from an RTF document.
func parseRTF(buf []byte, delim string) (Document, error) {
	if !bytes.HasPrefix(bytes.TrimLeft(buf, " \t\r\n"), []byte("{\\rtf")) {
		return nil, fmt.Errorf("missing rtf header: %w", ErrUnsupportedFormat)
	}

	var (
		out      strings.Builder
		stack    []rtfState
		st       = rtfState{uc: 1}
		fallback int
		groupNew bool
	)
	emit := func(s string) {
		if st.skip {
			return
		}
		if fallback > 0 {
			fallback--
			return
		}
		out.WriteString(s)
	}

	for i := 0; i < len(buf); i++ {
		c := buf[i]
		switch c {
		case '{':
			stack = append(stack, st)
			groupNew = true
			continue
		case '}':
			if n := len(stack); n > 0 {
				st = stack[n-1]
				stack = stack[:n-1]
			}
			groupNew = false
			continue
		case '\r', '\n':
			continue
		case '\\':
		default:
			groupNew = false
			emit(string(c))
			continue
		}

		if i+1 >= len(buf) {
			break
		}
		i++
		c = buf[i]
		switch {
		case c == '*':
			st.skip = true
		case c == '\'':
			if i+2 < len(buf) {
				if v, err := strconv.ParseUint(string(buf[i+1:i+3]), 16, 8); err == nil {
					b, _ := charmap.Windows1252.NewDecoder().Bytes([]byte{byte(v)})
					emit(string(b))
				}
				i += 2
			}
		case c == '\\' || c == '{' || c == '}':
			emit(string(c))
		case c == '~':
			emit(" ")
		case c == '_':
			emit("-")
		case c == '-':
		case c == '\r' || c == '\n':
			emit("\n")
		case isASCIILetter(c):
			start := i
			for i < len(buf) && isASCIILetter(buf[i]) {
				i++
			}
			word := string(buf[start:i])
			pstart := i
			if i < len(buf) && buf[i] == '-' {
				i++
			}
			for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
				i++
			}
			param, hasParam := 0, false
			if i > pstart {
				if v, err := strconv.Atoi(string(buf[pstart:i])); err == nil {
					param, hasParam = v, true
				}
			}
			if i >= len(buf) || buf[i] != ' ' {
				i--
			}

			switch {
			case groupNew && rtfDestinations[word]:
				st.skip = true
			case word == "uc" && hasParam:
				st.uc = param
			case word == "u" && hasParam:
				if param < 0 {
					param += 65536
				}
				emit(string(rune(param)))
				fallback = st.uc
			default:
				if s, ok := rtfSymbols[word]; ok {
					emit(s)
				}
			}
		}
		groupNew = false
	}

	return joinLines(strings.Split(out.String(), "\n"), delim), nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
