package methodology

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

func TestClassifyHeuristic(t *testing.T) {
	text := "We ran a controlled experiment using a machine learning algorithm " +
		"and evaluated classification accuracy on a large dataset."

	report := NewClassifier(nil, 0).Classify(context.Background(), text)

	if report.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want 0.7", report.Confidence)
	}
	if report.ModelAnalysis != "" {
		t.Errorf("unexpected model analysis: %q", report.ModelAnalysis)
	}

	wantCategory := func(name string) {
		for _, c := range report.DesignCategories {
			if c == name {
				return
			}
		}
		t.Errorf("DesignCategories = %v, want to contain %q", report.DesignCategories, name)
	}
	wantCategory("experimental")
	wantCategory("computational")

	if !strings.Contains(report.Analysis, "Research Design:") {
		t.Errorf("narrative missing design section: %q", report.Analysis)
	}
	if !strings.Contains(report.Analysis, "Machine Learning/AI") {
		t.Errorf("narrative missing tools classification: %q", report.Analysis)
	}
}

func TestClassifyTechniques(t *testing.T) {
	text := "The study applied deep learning, regression and clustering, then " +
		"ran statistical analysis, correlation, anova and t-test comparisons."

	report := NewClassifier(nil, 0).Classify(context.Background(), text)

	if len(report.Techniques) == 0 {
		t.Fatal("expected techniques")
	}
	if len(report.Techniques) > 5 {
		t.Errorf("Techniques length = %d, want <= 5", len(report.Techniques))
	}
}

func TestClassifyNoSignals(t *testing.T) {
	report := NewClassifier(nil, 0).Classify(context.Background(),
		"A short note about gardening and the weather.")

	if len(report.DesignCategories) != 0 {
		t.Errorf("DesignCategories = %v, want empty", report.DesignCategories)
	}
	if !strings.Contains(report.Analysis, "Not clearly identified") {
		t.Errorf("narrative = %q, want unidentified design", report.Analysis)
	}
	if report.ResearchMethods == nil || report.Techniques == nil {
		t.Error("lists must be non-nil")
	}
}

func TestClassifyWithCompletion(t *testing.T) {
	p := fakeProvider{out: "Structured breakdown of the methodology."}
	report := NewClassifier(p, time.Second).Classify(context.Background(),
		"An experiment with a survey and regression analysis.")

	if report.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", report.Confidence)
	}
	if report.ModelAnalysis != "Structured breakdown of the methodology." {
		t.Errorf("ModelAnalysis = %q", report.ModelAnalysis)
	}
}

func TestClassifyDegradesOnCompletionFailure(t *testing.T) {
	p := fakeProvider{err: errors.New("connection refused")}
	report := NewClassifier(p, time.Second).Classify(context.Background(),
		"An experiment with a survey and regression analysis.")

	if report.Confidence != 0.7 {
		t.Errorf("Confidence = %v, want heuristic 0.7 after degradation", report.Confidence)
	}
	if report.ModelAnalysis != "" {
		t.Errorf("ModelAnalysis = %q, want empty after degradation", report.ModelAnalysis)
	}
	if report.Error != "" {
		t.Errorf("degradation must not surface as report error, got %q", report.Error)
	}
}

func TestWindowCutsOnWordBoundary(t *testing.T) {
	text := strings.Repeat("word ", 2000)
	got := window(text, 4000)
	if len(got) > 4000 {
		t.Errorf("window length = %d, want <= 4000", len(got))
	}
	if strings.HasSuffix(got, "wor") {
		t.Error("window split a word")
	}
}

func TestErrorReport(t *testing.T) {
	report := ErrorReport("boom")
	if report.Error != "boom" {
		t.Errorf("Error = %q, want %q", report.Error, "boom")
	}
	if report.DesignCategories == nil || report.ResearchMethods == nil || report.Techniques == nil {
		t.Error("error report lists must be non-nil")
	}
}
