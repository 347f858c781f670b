package parser

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Native parses PDF, OOXML, ODF and RTF documents in-process.
type Native struct {
	conf *model.Configuration
}

var _ Parser = (*Native)(nil)

// NewNative is the Factory for the in-process backend. It prepares the pdfcpu
// configuration without touching the user's config directory.
func NewNative(ctx context.Context) (Parser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Native{conf: conf}, nil
}

// Parse picks a decoder from the file extension, falling back to magic-byte sniffing.
func (n *Native) Parse(ctx context.Context, buf []byte, opts Options) (Document, error) {
	if len(buf) == 0 {
		return nil, ErrEmptyInput
	}
	delim := opts.delimiter()

	switch strings.ToLower(filepath.Ext(opts.FileName)) {
	case ".pdf":
		return n.parsePDF(ctx, buf, delim)
	case ".docx":
		return parseOOXML(buf, delim)
	case ".odt":
		return parseODF(buf, delim)
	case ".rtf":
		return parseRTF(buf, delim)
	}

	switch {
	case bytes.HasPrefix(buf, []byte("%PDF")):
		return n.parsePDF(ctx, buf, delim)
	case bytes.HasPrefix(buf, []byte("{\\rtf")):
		return parseRTF(buf, delim)
	case bytes.HasPrefix(buf, []byte("PK\x03\x04")):
		return parseZipped(buf, delim)
	}
	return nil, fmt.Errorf("%s: %w", opts.FileName, ErrUnsupportedFormat)
}
