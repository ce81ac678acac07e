package parser

import (
	"context"
	"fmt"
	"os"
)

// TextBackend reads plain text files verbatim.
type TextBackend struct{}

func (b *TextBackend) Name() string { return "text" }

func (b *TextBackend) Extract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return string(data), nil
}
