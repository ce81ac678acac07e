package paperscope

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperscope/paperscope/llm"
	"github.com/paperscope/paperscope/parser"
)

const sampleText = "This paper presents a controlled experiment on neural network training. " +
	"Prior work [1] established the baseline, later confirmed (Smith, 2020). " +
	"A key limitation of this method is the small training data available. " +
	"Future work should explore new technology for scaling these results."

func degradedAnalyzer() *Analyzer {
	return NewWithProviders(DegradedConfig(), nil, nil)
}

func TestAnalyzerStrategy(t *testing.T) {
	assert.Equal(t, "degraded", degradedAnalyzer().Strategy())
}

func TestAnalysesAreTotalOnEmptyText(t *testing.T) {
	a := degradedAnalyzer()
	ctx := context.Background()

	assert.NotEmpty(t, a.AnalyzeCitations(ctx, "").Error)
	assert.NotEmpty(t, a.AnalyzeMethodology(ctx, "  \n ").Error)
	assert.NotEmpty(t, a.IdentifyGaps(ctx, "").Error)
	assert.NotEmpty(t, a.BuildConceptMap(ctx, "").Error)
	assert.NotEmpty(t, a.Summarize(ctx, "").Error)

	search := a.Search(ctx, "query", "")
	assert.NotEmpty(t, search.Error)
	assert.Equal(t, "query", search.Query)
}

func TestAnalyzeCitationsEndToEnd(t *testing.T) {
	report := degradedAnalyzer().AnalyzeCitations(context.Background(), sampleText)

	require.Empty(t, report.Error)
	assert.Equal(t, 2, report.TotalCitations)
	assert.Contains(t, report.PublicationYears, 2020)
}

func TestSearchEndToEnd(t *testing.T) {
	report := degradedAnalyzer().Search(context.Background(), "neural network", sampleText)

	require.Empty(t, report.Error)
	require.NotEmpty(t, report.Results)
	assert.Equal(t, "lexical", report.Strategy)
	assert.LessOrEqual(t, len(report.Results), 5)
}

func TestAnalyzeAll(t *testing.T) {
	report := degradedAnalyzer().AnalyzeAll(context.Background(), sampleText)

	assert.NotEmpty(t, report.RequestID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, "degraded", report.Strategy)

	assert.Empty(t, report.Citations.Error)
	assert.Empty(t, report.Methodology.Error)
	assert.Empty(t, report.Gaps.Error)
	assert.Empty(t, report.ConceptMap.Error)
	assert.Empty(t, report.Summary.Error)

	assert.Equal(t, 2, report.Citations.TotalCitations)
	assert.NotEmpty(t, report.Gaps.LimitationSentences)
	assert.NotEmpty(t, report.Methodology.DesignCategories)
	assert.NotEmpty(t, report.Summary.Short)
}

func TestAnalyzeAllEmptyText(t *testing.T) {
	report := degradedAnalyzer().AnalyzeAll(context.Background(), "")

	assert.NotEmpty(t, report.RequestID)
	assert.NotEmpty(t, report.Citations.Error)
	assert.NotEmpty(t, report.Methodology.Error)
	assert.NotEmpty(t, report.Gaps.Error)
	assert.NotEmpty(t, report.ConceptMap.Error)
	assert.NotEmpty(t, report.Summary.Error)
}

func TestRunAnalysisRecoversPanic(t *testing.T) {
	errReport := func(msg string) string { return "error: " + msg }

	got := runAnalysis("boom test", "some text", errReport, func() string {
		panic("deliberate failure")
	})

	require.True(t, strings.HasPrefix(got, "error:"), "panic must become an error report, got %q", got)
	assert.Contains(t, got, "deliberate failure")
}

func TestNewDisablesUnbuildableCapabilities(t *testing.T) {
	cfg := DegradedConfig()
	cfg.Completion.Provider = "carrier-pigeon"

	a := New(cfg)
	require.NotNil(t, a)
	assert.Equal(t, "degraded", a.Strategy())

	report := a.AnalyzeMethodology(context.Background(), sampleText)
	assert.Empty(t, report.Error)
	assert.Equal(t, 0.7, report.Confidence)
}

func TestExtractTextPropagatesErrors(t *testing.T) {
	a := degradedAnalyzer()
	_, err := a.ExtractText(context.Background(), "missing.pptx")
	assert.True(t, errors.Is(err, parser.ErrUnsupportedFormat))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.NoError(t, DegradedConfig().Validate())

	bad := DefaultConfig()
	bad.ChunkSize = -1
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultConfig()
	bad.ChunkOverlap = bad.ChunkSize
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)

	bad = DefaultConfig()
	bad.CapabilityTimeout = -time.Second
	assert.ErrorIs(t, bad.Validate(), ErrInvalidConfig)
}

func TestCapabilityUnavailableMatchesProviderErrors(t *testing.T) {
	// Degradation errors raised inside the llm package must be matchable
	// through the facade's sentinel.
	_, err := llm.CompleteChecked(context.Background(), nil, "prompt", 10, time.Second)
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 200, cfg.ChunkSize)
	assert.Equal(t, 40, cfg.ChunkOverlap)
	assert.Equal(t, 100, cfg.MinTextLength)
	assert.NotEmpty(t, cfg.Completion.Provider)

	d := DegradedConfig()
	assert.Empty(t, d.Completion.Provider)
	assert.Empty(t, d.Embedding.Provider)
}
