// Package parser provides the delegated document parsing capability used for binary
// document formats. A Parser is expensive to construct, so it is obtained through a Loader
// that initialises it once on first use.
package parser

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned when a backend cannot handle the given bytes.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyInput is returned for a zero-length buffer.
	ErrEmptyInput = errors.New("empty document")
)

// Options tune a single Parse call.
type Options struct {
	// NewlineDelimiter separates paragraphs in the textual projection. Defaults to "\n".
	NewlineDelimiter string
	// FileName is a format hint; the extension selects the decoder when present.
	FileName string
}

func (o Options) delimiter() string {
	if o.NewlineDelimiter == "" {
		return "\n"
	}
	return o.NewlineDelimiter
}

// Document is a parsed file.
type Document interface {
	// Text returns the plain-text projection of the document.
	Text() string
}

// Parser turns document bytes into a Document. Implementations must be safe for concurrent use.
type Parser interface {
	Parse(ctx context.Context, buf []byte, opts Options) (Document, error)
}

// Factory constructs a Parser. It is called by a Loader at most once per successful load.
type Factory func(ctx context.Context) (Parser, error)

type textDocument struct {
	text string
}

func (d textDocument) Text() string { return d.text }

// joinLines joins non-empty paragraphs with the delimiter.
func joinLines(lines []string, delim string) textDocument {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimRight(l, " \t"); l != "" {
			out = append(out, l)
		}
	}
	return textDocument{text: strings.Join(out, delim)}
}
