// Package paperscope analyzes research papers: citation extraction,
// methodology classification, research-gap identification, concept mapping,
// semantic search, and summarization. Every analysis is total: it returns a
// report, never an error, and a report's Error field carries any failure.
// Model capabilities (completion, embedding) are optional; each analysis
// degrades to a heuristic strategy when a capability is missing or fails,
// producing the same report shape either way.
package paperscope

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/paperscope/paperscope/citation"
	"github.com/paperscope/paperscope/conceptmap"
	"github.com/paperscope/paperscope/gaps"
	"github.com/paperscope/paperscope/llm"
	"github.com/paperscope/paperscope/methodology"
	"github.com/paperscope/paperscope/parser"
	"github.com/paperscope/paperscope/retrieval"
	"github.com/paperscope/paperscope/summary"
)

// Report aliases so callers only import this package.
type (
	CitationReport    = citation.Report
	MethodologyReport = methodology.Report
	GapReport         = gaps.Report
	ConceptMap        = conceptmap.Report
	SearchReport      = retrieval.Report
	SummaryReport     = summary.Report
)

// FullReport bundles every analysis of one document.
type FullReport struct {
	RequestID   string            `json:"request_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Strategy    string            `json:"strategy"` // "full" or "degraded"
	Citations   CitationReport    `json:"citations"`
	Methodology MethodologyReport `json:"methodology"`
	Gaps        GapReport         `json:"gaps"`
	ConceptMap  ConceptMap        `json:"concept_map"`
	Summary     SummaryReport     `json:"summary"`
}

// Analyzer is the main entry point for the engine.
type Analyzer struct {
	cfg        Config
	completion llm.Provider
	embedder   llm.Provider

	citations  *citation.Analyzer
	classifier *methodology.Classifier
	identifier *gaps.Identifier
	concepts   *conceptmap.Builder
	ranker     *retrieval.Ranker
	summarizer *summary.Summarizer
	extractor  *parser.Extractor
}

// New creates an Analyzer from configuration. Invalid values are clamped to
// defaults (use Config.Validate to check strictly), and a capability whose
// provider cannot be constructed is disabled with a warning rather than
// failing the whole engine; the affected analyses run degraded.
func New(cfg Config) *Analyzer {
	if err := cfg.Validate(); err != nil {
		slog.Warn("clamping configuration", "error", err)
	}

	var completion llm.Provider
	if cfg.Completion.Provider != "" {
		p, err := llm.NewProvider(cfg.Completion)
		if err != nil {
			slog.Warn("completion capability disabled",
				"error", fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err))
		} else {
			completion = p
		}
	}

	var embedder llm.Provider
	if cfg.Embedding.Provider != "" {
		p, err := llm.NewProvider(cfg.Embedding)
		if err != nil {
			slog.Warn("embedding capability disabled",
				"error", fmt.Errorf("%w: %v", ErrCapabilityUnavailable, err))
		} else {
			embedder = p
		}
	}

	return NewWithProviders(cfg, completion, embedder)
}

// NewWithProviders creates an Analyzer with explicit capability providers.
// Either provider may be nil.
func NewWithProviders(cfg Config, completion, embedder llm.Provider) *Analyzer {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = DefaultConfig().ChunkOverlap
	}
	if cfg.MinTextLength <= 0 {
		cfg.MinTextLength = DefaultConfig().MinTextLength
	}

	return &Analyzer{
		cfg:        cfg,
		completion: completion,
		embedder:   embedder,
		citations:  citation.NewAnalyzer(nil),
		classifier: methodology.NewClassifier(completion, cfg.CapabilityTimeout),
		identifier: gaps.NewIdentifier(completion, cfg.CapabilityTimeout),
		concepts:   conceptmap.NewBuilder(completion, cfg.CapabilityTimeout),
		ranker: retrieval.NewRanker(embedder, retrieval.Config{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			Timeout:      cfg.CapabilityTimeout,
		}),
		summarizer: summary.NewSummarizer(completion, cfg.CapabilityTimeout),
		extractor:  parser.NewExtractor(cfg.MinTextLength),
	}
}

// Strategy reports which overall strategy is active. Individual analyses may
// still degrade at call time when a capability fails.
func (a *Analyzer) Strategy() string {
	if a.completion != nil && a.embedder != nil {
		return "full"
	}
	return "degraded"
}

// ExtractText extracts and normalizes text from a document file. This is
// the one operation that returns an error: without text there is nothing to
// attach a report to.
func (a *Analyzer) ExtractText(ctx context.Context, path string) (*parser.Document, error) {
	return a.extractor.Extract(ctx, path)
}

// AnalyzeCitations extracts citation mentions, years, key authors, and the
// citation network from text.
func (a *Analyzer) AnalyzeCitations(ctx context.Context, text string) CitationReport {
	return runAnalysis("citations", text, citation.ErrorReport, func() CitationReport {
		return a.citations.Analyze(text)
	})
}

// AnalyzeMethodology classifies the research design and techniques.
func (a *Analyzer) AnalyzeMethodology(ctx context.Context, text string) MethodologyReport {
	return runAnalysis("methodology", text, methodology.ErrorReport, func() MethodologyReport {
		return a.classifier.Classify(ctx, text)
	})
}

// IdentifyGaps finds limitation and future-work language.
func (a *Analyzer) IdentifyGaps(ctx context.Context, text string) GapReport {
	return runAnalysis("gaps", text, gaps.ErrorReport, func() GapReport {
		return a.identifier.Identify(ctx, text)
	})
}

// BuildConceptMap extracts concepts and their sentence co-occurrences.
func (a *Analyzer) BuildConceptMap(ctx context.Context, text string) ConceptMap {
	return runAnalysis("concept map", text, conceptmap.ErrorReport, func() ConceptMap {
		return a.concepts.Build(ctx, text)
	})
}

// Summarize produces short and detailed summaries plus a glossary.
func (a *Analyzer) Summarize(ctx context.Context, text string) SummaryReport {
	return runAnalysis("summary", text, summary.ErrorReport, func() SummaryReport {
		return a.summarizer.Summarize(ctx, text)
	})
}

// Search ranks document content against a query.
func (a *Analyzer) Search(ctx context.Context, query, text string) SearchReport {
	wrap := func(msg string) SearchReport { return retrieval.ErrorReport(query, msg) }
	return runAnalysis("search", text, wrap, func() SearchReport {
		return a.ranker.Search(ctx, query, text)
	})
}

// AnalyzeAll runs every document-level analysis concurrently and bundles
// the reports. Individual failures surface in the per-report Error fields;
// the bundle itself is always produced.
func (a *Analyzer) AnalyzeAll(ctx context.Context, text string) FullReport {
	report := FullReport{
		RequestID:   uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Strategy:    a.Strategy(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { report.Citations = a.AnalyzeCitations(ctx, text); return nil })
	g.Go(func() error { report.Methodology = a.AnalyzeMethodology(ctx, text); return nil })
	g.Go(func() error { report.Gaps = a.IdentifyGaps(ctx, text); return nil })
	g.Go(func() error { report.ConceptMap = a.BuildConceptMap(ctx, text); return nil })
	g.Go(func() error { report.Summary = a.Summarize(ctx, text); return nil })
	_ = g.Wait()

	return report
}

// runAnalysis wraps one analysis with the totality guarantees: empty input
// yields an error report, and a panic in the analysis is converted to an
// error report instead of crashing the caller.
func runAnalysis[T any](name, text string, errReport func(string) T, fn func() T) (out T) {
	if strings.TrimSpace(text) == "" {
		return errReport(ErrEmptyText.Error())
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Error("analysis panicked", "analysis", name, "panic", r,
				"stack", string(debug.Stack()))
			out = errReport(fmt.Sprintf("%s analysis failed: %v", name, r))
		}
	}()
	return fn()
}
