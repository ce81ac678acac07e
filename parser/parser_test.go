package parser

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractText(t *testing.T) {
	content := strings.Repeat("This is a research paper about neural networks. ", 10)
	path := writeTemp(t, "paper.txt", content)

	e := NewExtractor(100)
	doc, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Method != "text" {
		t.Errorf("doc.Method = %q, want %q", doc.Method, "text")
	}
	if doc.Title != "paper" {
		t.Errorf("doc.Title = %q, want %q", doc.Title, "paper")
	}
	if !strings.Contains(doc.Text, "neural networks") {
		t.Errorf("text lost content: %q", doc.Text)
	}
}

func TestExtractInsufficientText(t *testing.T) {
	// 50 characters of valid content, below the 100-char threshold.
	path := writeTemp(t, "short.txt", strings.Repeat("ab cd ", 8)+"xy")

	e := NewExtractor(100)
	_, err := e.Extract(context.Background(), path)
	if !errors.Is(err, ErrInsufficientText) {
		t.Fatalf("err = %v, want ErrInsufficientText", err)
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	e := NewExtractor(0)
	for _, path := range []string{"slides.pptx", "legacy.xls"} {
		_, err := e.Extract(context.Background(), path)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Extract(%q) err = %v, want ErrUnsupportedFormat", path, err)
		}
	}
}

func TestExtractNormalizesOutput(t *testing.T) {
	content := "Body text starts here and keeps going for a while to pass the bar.\n\n\n\n\n" +
		"See https://example.com for details. " + strings.Repeat("More words. ", 10)
	path := writeTemp(t, "noisy.txt", content)

	e := NewExtractor(100)
	doc, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if strings.Contains(doc.Text, "http") {
		t.Errorf("URL survived normalization: %q", doc.Text)
	}
	if doc.Text != Normalize(doc.Text) {
		t.Error("extracted text is not in canonical form")
	}
}

// failingBackend always errors, to exercise tier fallback.
type failingBackend struct{}

func (failingBackend) Name() string { return "failing" }
func (failingBackend) Extract(ctx context.Context, path string) (string, error) {
	return "", errors.New("backend exploded")
}

func TestExtractFallsBackPastFailingTier(t *testing.T) {
	content := strings.Repeat("Fallback tier produced this perfectly fine text. ", 5)
	path := writeTemp(t, "doc.custom", content)

	e := &Extractor{minLength: 100, backends: make(map[string][]Backend)}
	e.Register("custom", failingBackend{})
	e.Register("custom", &TextBackend{})

	doc, err := e.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if doc.Method != "text" {
		t.Errorf("doc.Method = %q, want fallback backend %q", doc.Method, "text")
	}
}
