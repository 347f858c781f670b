package parser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrUnmappableText is returned when a page shows text through a font whose codes have no
// unicode mapping, such as an Identity-H font without a ToUnicode CMap.
var ErrUnmappableText = errors.New("pdf text has no unicode mapping")

// Above this share of U+FFFD among the printable runes of a page, its text is rejected.
const maxUnmappedShare = 0.25

func (n *Native) parsePDF(ctx context.Context, buf []byte, delim string) (Document, error) {
	conf := *n.conf
	if _, err := api.ReadContext(bytes.NewReader(buf), &conf); err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	r, err := openPDF(buf)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pl, err := pageLines(page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		lines = append(lines, pl...)
	}
	return joinLines(lines, delim), nil
}

// openPDF converts reader panics on malformed input into errors.
func openPDF(buf []byte) (r *pdf.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("malformed pdf: %v", p)
		}
	}()
	return pdf.NewReader(bytes.NewReader(buf), int64(len(buf)))
}

// hasUnicodeMapping reports whether text shown in f can be turned into unicode. Composite
// fonts need a ToUnicode CMap; simple fonts fall back to their named or base encoding.
func hasUnicodeMapping(f pdf.Font) bool {
	if f.V.Key("ToUnicode").Kind() == pdf.Stream {
		return true
	}
	if f.V.Key("Subtype").Name() == "Type0" {
		return false
	}
	enc := f.V.Key("Encoding")
	return enc.Kind() != pdf.Name || !strings.HasPrefix(enc.Name(), "Identity-")
}

// pageLines interprets the page content stream and returns the text shown by the text
// operators, decoded through each font's encoding. Lines break at vertical moves, next-line
// operators and the end of a text object.
func pageLines(p pdf.Page) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			lines, err = nil, fmt.Errorf("interpret content: %v", r)
		}
	}()

	encoders := make(map[string]pdf.TextEncoding)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		if !hasUnicodeMapping(f) {
			return nil, fmt.Errorf("font %s: %w", name, ErrUnmappableText)
		}
		encoders[name] = f.Encoder()
	}

	var (
		cur   strings.Builder
		enc   pdf.TextEncoding
		lastY float64
		haveY bool
	)
	newline := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}
	space := func() {
		if s := cur.String(); s != "" && !strings.HasSuffix(s, " ") {
			cur.WriteByte(' ')
		}
	}
	show := func(v pdf.Value) {
		if enc != nil && v.Kind() == pdf.String {
			cur.WriteString(enc.Decode(v.RawString()))
		}
	}

	handle := func(stk *pdf.Stack, op string) {
		args := make([]pdf.Value, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}

		switch op {
		case "Tf":
			if len(args) == 2 {
				enc = encoders[args[0].Name()]
			}
		case "Tj":
			if len(args) == 1 {
				show(args[0])
			}
		case "'", "\"":
			newline()
			if len(args) > 0 {
				show(args[len(args)-1])
			}
		case "TJ":
			if len(args) != 1 {
				return
			}
			arr := args[0]
			for i := 0; i < arr.Len(); i++ {
				it := arr.Index(i)
				switch it.Kind() {
				case pdf.String:
					show(it)
				case pdf.Integer, pdf.Real:
					if it.Float64() < -200 {
						space()
					}
				}
			}
		case "Td", "TD":
			if len(args) == 2 && args[1].Float64() != 0 {
				newline()
			} else {
				space()
			}
		case "Tm":
			if len(args) == 6 {
				y := args[5].Float64()
				if haveY && y != lastY {
					newline()
				} else {
					space()
				}
				lastY, haveY = y, true
			}
		case "T*", "ET":
			newline()
		}
	}

	contents := p.V.Key("Contents")
	streams := []pdf.Value{contents}
	if contents.Kind() == pdf.Array {
		streams = streams[:0]
		for i := 0; i < contents.Len(); i++ {
			streams = append(streams, contents.Index(i))
		}
	}
	for _, strm := range streams {
		if strm.Kind() == pdf.Stream {
			pdf.Interpret(strm, handle)
		}
	}
	newline()

	return cleanLines(lines)
}

// cleanLines drops control characters and U+FFFD. A page where unmapped glyphs make up more
// than maxUnmappedShare of the text is rejected.
func cleanLines(lines []string) ([]string, error) {
	var printable, unmapped int
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.Map(func(r rune) rune {
			switch {
			case r == unicode.ReplacementChar:
				unmapped++
				return -1
			case r == '\t':
				return ' '
			case unicode.IsControl(r):
				return -1
			}
			if !unicode.IsSpace(r) {
				printable++
			}
			return r
		}, l))
	}
	if unmapped > 0 && float64(unmapped) > maxUnmappedShare*float64(printable+unmapped) {
		return nil, ErrUnmappableText
	}
	return out, nil
}
