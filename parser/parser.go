// Package parser turns source documents into canonical text. Extraction is
// tiered: each format has an ordered list of backends, highest fidelity
// first, and the first backend whose output meets the minimum-length bar
// wins. Backend failures are logged and treated as insufficient output, not
// propagated. Accepted text always passes through Normalize before being
// returned.
package parser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// ErrInsufficientText is returned when no extraction backend produced text
// meeting the minimum-length threshold.
var ErrInsufficientText = errors.New("parser: no backend produced sufficient text")

// ErrUnsupportedFormat is returned for file extensions with no registered backends.
var ErrUnsupportedFormat = errors.New("parser: unsupported document format")

// DefaultMinTextLength is the minimum character count (after trimming) for
// a backend's output to be accepted.
const DefaultMinTextLength = 100

// Document is the canonical text produced by extraction, owned by the
// caller for the duration of one analysis request.
type Document struct {
	Text   string // normalized canonical text
	Title  string // base filename, informational only
	Method string // name of the backend that produced the text
}

// Backend is a single extraction method for one or more formats.
type Backend interface {
	// Name identifies the backend in logs and Document.Method.
	Name() string
	// Extract returns raw text for the document at path.
	Extract(ctx context.Context, path string) (string, error)
}

// Extractor routes documents to backends by extension and applies the
// tiered-fallback policy.
type Extractor struct {
	minLength int
	backends  map[string][]Backend // extension -> ordered backends
}

// NewExtractor returns an Extractor with the built-in backends registered.
// minLength <= 0 selects DefaultMinTextLength.
func NewExtractor(minLength int) *Extractor {
	if minLength <= 0 {
		minLength = DefaultMinTextLength
	}
	e := &Extractor{
		minLength: minLength,
		backends:  make(map[string][]Backend),
	}
	e.Register("pdf", &PDFRowsBackend{})
	e.Register("pdf", &PDFPlainBackend{})
	e.Register("txt", &TextBackend{})
	e.Register("md", &TextBackend{})
	// Legacy binary .xls is not registered: excelize only reads the OOXML
	// formats, so that tier could never produce text.
	e.Register("xlsx", &XLSXBackend{})
	return e
}

// Register appends a backend to the tier list for an extension. Order of
// registration is the fallback order.
func (e *Extractor) Register(ext string, b Backend) {
	e.backends[ext] = append(e.backends[ext], b)
}

// Extract tries each backend for the file's format in order and returns the
// first normalized result whose trimmed length meets the minimum. It fails
// with ErrInsufficientText when every tier comes up short.
func (e *Extractor) Extract(ctx context.Context, path string) (*Document, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	tiers, ok := e.backends[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	filename := filepath.Base(path)
	for _, b := range tiers {
		text, err := b.Extract(ctx, path)
		if err != nil {
			slog.Warn("extract: backend failed, trying next tier",
				"file", filename, "backend", b.Name(), "error", err)
			continue
		}
		if len(strings.TrimSpace(text)) < e.minLength {
			slog.Info("extract: backend output below threshold",
				"file", filename, "backend", b.Name(),
				"length", len(strings.TrimSpace(text)), "min", e.minLength)
			continue
		}
		slog.Info("extract: backend accepted",
			"file", filename, "backend", b.Name(), "length", len(text))
		return &Document{
			Text:   Normalize(text),
			Title:  strings.TrimSuffix(filename, filepath.Ext(filename)),
			Method: b.Name(),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s (min %d chars)", ErrInsufficientText, filename, e.minLength)
}
