package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeProvider returns canned completion output or a fixed error.
type fakeProvider struct {
	out string
	err error
}

func (f fakeProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f.out, f.err
}

func (f fakeProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not an embedder")
}

const sampleText = "CNN architectures transformed computer vision. " +
	"Residual connections made very deep CNN training stable. " +
	"Batch normalization accelerated convergence further. " +
	"Later work applied CNN ideas to language tasks. " +
	"Attention mechanisms eventually displaced them."

func TestSummarizeDegraded(t *testing.T) {
	report := NewSummarizer(nil, 0).Summarize(context.Background(), sampleText)

	if !strings.HasPrefix(report.Short, "CNN architectures transformed computer vision.") {
		t.Errorf("short summary should start with the lead sentence, got %q", report.Short)
	}
	if strings.Count(report.Short, ".") > 3 {
		t.Errorf("short summary too long: %q", report.Short)
	}
	if len(report.Detailed) < len(report.Short) {
		t.Error("detailed summary should not be shorter than the short one")
	}
	for _, g := range report.Glossary {
		if g.Definition != "Definition unavailable" {
			t.Errorf("degraded definition = %q", g.Definition)
		}
	}
	if report.Error != "" {
		t.Errorf("unexpected error: %q", report.Error)
	}
}

func TestSummarizeGlossaryTerms(t *testing.T) {
	report := NewSummarizer(nil, 0).Summarize(context.Background(), sampleText)

	if len(report.Glossary) == 0 {
		t.Fatal("expected glossary entries")
	}
	if len(report.Glossary) > 8 {
		t.Errorf("glossary length = %d, want <= 8", len(report.Glossary))
	}
	// CNN appears three times, more than any other term.
	if report.Glossary[0].Term != "CNN" {
		t.Errorf("most frequent term = %q, want CNN", report.Glossary[0].Term)
	}
}

func TestSummarizeWithCompletion(t *testing.T) {
	p := fakeProvider{out: "Model-written summary."}
	report := NewSummarizer(p, time.Second).Summarize(context.Background(), sampleText)

	if report.Short != "Model-written summary." {
		t.Errorf("Short = %q", report.Short)
	}
	if report.Detailed != "Model-written summary." {
		t.Errorf("Detailed = %q", report.Detailed)
	}
	for _, g := range report.Glossary {
		if g.Definition != "Model-written summary." {
			t.Errorf("definition = %q", g.Definition)
		}
	}
}

func TestSummarizeDegradesOnCompletionFailure(t *testing.T) {
	p := fakeProvider{err: errors.New("overloaded")}
	report := NewSummarizer(p, time.Second).Summarize(context.Background(), sampleText)

	if !strings.HasPrefix(report.Short, "CNN architectures") {
		t.Errorf("expected lead-sentence fallback, got %q", report.Short)
	}
	if report.Error != "" {
		t.Errorf("degradation must not surface as report error, got %q", report.Error)
	}
}

func TestLeadSentences(t *testing.T) {
	got := leadSentences("One. Two. Three. Four.", 2)
	if got != "One. Two." {
		t.Errorf("leadSentences = %q, want %q", got, "One. Two.")
	}
}

func TestErrorReport(t *testing.T) {
	report := ErrorReport("boom")
	if report.Error != "boom" {
		t.Errorf("Error = %q, want %q", report.Error, "boom")
	}
	if report.Glossary == nil {
		t.Error("glossary must be non-nil")
	}
}
