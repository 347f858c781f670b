// Package extract turns uploaded files into plain text.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"docqa/internal/parser"
)

const (
	StrategyText     = "text"
	StrategyParser   = "parser"
	StrategyLegacy   = "legacy"
	StrategyFallback = "fallback"
)

var (
	textExtensions   = map[string]bool{".txt": true, ".md": true, ".csv": true}
	binaryExtensions = map[string]bool{".pdf": true, ".docx": true, ".rtf": true, ".odt": true}
)

const legacyExtension = ".doc"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is an uploaded file held in memory.
type File struct {
	Name string
	Type string
	Size int64
	Data []byte
}

// Observer receives extraction timings.
type Observer interface {
	ObserveExtraction(strategy string, d time.Duration)
}

// Error reports that a binary document could not be parsed.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("could not extract text from %s: the document parser failed to load or run: %v", e.File, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Extractor selects an extraction strategy per file extension.
type Extractor struct {
	loader   *parser.Loader
	logger   *zap.Logger
	observer Observer
}

// New returns an Extractor using loader for binary formats. observer may be nil.
func New(loader *parser.Loader, logger *zap.Logger, observer Observer) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{loader: loader, logger: logger, observer: observer}
}

// Extension returns the lowercased suffix starting at the last dot, or "".
func Extension(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return strings.ToLower(name[i:])
	}
	return ""
}

// Extract returns the trimmed text of f. Plain-text formats are decoded directly. Other
// formats go through the document parser; if that fails, PDF, DOCX, RTF and ODT fail with
// *Error while legacy .doc and unknown formats degrade to heuristic decoding.
// An empty result is not an error.
func (e *Extractor) Extract(ctx context.Context, f File) (text string, err error) {
	ext := Extension(f.Name)
	ctx, span := otel.Tracer("docqa/extract").Start(ctx, "extract.Extract")
	span.SetAttributes(
		attribute.String("file.extension", ext),
		attribute.Int64("file.size", int64(len(f.Data))),
	)
	strategy := StrategyParser
	start := time.Now()
	defer func() {
		span.SetAttributes(attribute.String("extract.strategy", strategy))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "extraction failed")
		}
		span.End()
		if e.observer != nil {
			e.observer.ObserveExtraction(strategy, time.Since(start))
		}
	}()

	if textExtensions[ext] {
		strategy = StrategyText
		return decodeText(f.Data), nil
	}

	text, perr := e.parse(ctx, f)
	if perr == nil {
		return text, nil
	}
	e.logger.Warn("document parser failed",
		zap.String("file", f.Name),
		zap.String("extension", ext),
		zap.Error(perr),
	)

	if binaryExtensions[ext] {
		return "", &Error{File: f.Name, Err: perr}
	}
	if ext == legacyExtension {
		if s := decodeLegacy(f.Data); s != "" {
			strategy = StrategyLegacy
			return s, nil
		}
	}
	strategy = StrategyFallback
	return decodeText(f.Data), nil
}

func (e *Extractor) parse(ctx context.Context, f File) (string, error) {
	p, err := e.loader.Get(ctx)
	if err != nil {
		return "", err
	}
	doc, err := p.Parse(ctx, f.Data, parser.Options{NewlineDelimiter: "\n", FileName: f.Name})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", nil
	}
	return strings.TrimSpace(doc.Text()), nil
}

// decodeText decodes UTF-8, replacing invalid sequences and dropping a leading BOM.
func decodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	s := string(b)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "\uFFFD")
	}
	return strings.TrimSpace(s)
}
