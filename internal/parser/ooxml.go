package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"docqa/internal/validation"
)

const (
	wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	odfNS  = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"

	// maxSpaceRun caps a single text:s run.
	maxSpaceRun = 1024
)

var (
	// ErrMemberTooLarge is returned when a decompressed archive member exceeds maxMemberBytes.
	ErrMemberTooLarge = errors.New("archive member too large")
	// ErrTextTooLarge is returned when the text projection would exceed maxMemberBytes.
	ErrTextTooLarge = errors.New("document text too large")
)

// maxMemberBytes bounds how much of one archive member is decompressed.
var maxMemberBytes int64 = 8 * validation.MaxFileSizeBytes

func openZip(buf []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return zr, nil
}

func readMember(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(io.LimitReader(rc, maxMemberBytes+1))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if int64(len(b)) > maxMemberBytes {
			return nil, fmt.Errorf("%s: %w", name, ErrMemberTooLarge)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%s not found: %w", name, ErrUnsupportedFormat)
}

// parseZipped sniffs a zip container for a WordprocessingML or ODF text body.
func parseZipped(buf []byte, delim string) (Document, error) {
	doc, err := parseOOXML(buf, delim)
	if err == nil || !errors.Is(err, ErrUnsupportedFormat) {
		return doc, err
	}
	return parseODF(buf, delim)
}

// parseOOXML reads word/document.xml. Paragraphs become lines; w:tab and w:br inside a run
// map to a tab and a line break.
func parseOOXML(buf []byte, delim string) (Document, error) {
	zr, err := openZip(buf)
	if err != nil {
		return nil, err
	}
	body, err := readMember(zr, "word/document.xml")
	if err != nil {
		return nil, err
	}

	var (
		lines  []string
		cur    strings.Builder
		inText bool
		inRun  int
	)
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "r":
				inRun++
			case "t":
				inText = true
			case "tab":
				if inRun > 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if inRun > 0 {
					lines = append(lines, cur.String())
					cur.Reset()
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "r":
				inRun--
			case "t":
				inText = false
			case "p":
				lines = append(lines, cur.String())
				cur.Reset()
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	lines = append(lines, cur.String())
	return joinLines(lines, delim), nil
}

// parseODF reads content.xml of an OpenDocument text file.
func parseODF(buf []byte, delim string) (Document, error) {
	zr, err := openZip(buf)
	if err != nil {
		return nil, err
	}
	body, err := readMember(zr, "content.xml")
	if err != nil {
		return nil, err
	}

	var (
		lines []string
		cur   strings.Builder
		depth int
		total int64
	)
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode content.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != odfNS {
				continue
			}
			switch t.Name.Local {
			case "p", "h":
				depth++
			case "tab":
				cur.WriteByte('\t')
			case "line-break":
				lines = append(lines, cur.String())
				cur.Reset()
			case "s":
				n := 1
				for _, a := range t.Attr {
					if a.Name.Local == "c" {
						if v, err := strconv.Atoi(a.Value); err == nil && v > 0 {
							n = min(v, maxSpaceRun)
						}
					}
				}
				total += int64(n)
				if total > maxMemberBytes {
					return nil, ErrTextTooLarge
				}
				cur.WriteString(strings.Repeat(" ", n))
			}
		case xml.EndElement:
			if t.Name.Space == odfNS && (t.Name.Local == "p" || t.Name.Local == "h") {
				depth--
				lines = append(lines, cur.String())
				cur.Reset()
			}
		case xml.CharData:
			if depth > 0 {
				total += int64(len(t))
				if total > maxMemberBytes {
					return nil, ErrTextTooLarge
				}
				cur.Write(t)
			}
		}
	}
	lines = append(lines, cur.String())
	return joinLines(lines, delim), nil
}
