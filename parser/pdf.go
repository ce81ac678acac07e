package parser

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFRowsBackend extracts PDF text page by page using row-ordered layout
// extraction. It preserves reading order better than the plain stream and
// is the preferred tier for PDFs.
type PDFRowsBackend struct{}

func (b *PDFRowsBackend) Name() string { return "pdf-rows" }

func (b *PDFRowsBackend) Extract(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	totalPages := reader.NumPage()
	for i := 1; i <= totalPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			// Skip pages that fail row extraction; the page may still be
			// covered by the plain-text tier.
			continue
		}
		for _, row := range rows {
			for _, word := range row.Content {
				sb.WriteString(word.S)
				sb.WriteByte(' ')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// PDFPlainBackend extracts the whole document's plain text stream in one
// pass. Lower fidelity than row extraction but succeeds on some PDFs where
// per-page layout decoding fails.
type PDFPlainBackend struct{}

func (b *PDFPlainBackend) Name() string { return "pdf-plain" }

func (b *PDFPlainBackend) Extract(ctx context.Context, path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	r, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting plain text: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading plain text: %w", err)
	}
	return string(data), nil
}
