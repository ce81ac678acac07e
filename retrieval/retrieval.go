// Package retrieval ranks document content against a query. Two
// interchangeable strategies share one output contract: a dense strategy
// that embeds overlapping chunks and scores them by cosine similarity, and
// a lexical strategy that scores sentences by query-word overlap. Both
// apply the same relevance threshold and top-k policy so results are
// comparable in shape; only the score semantics differ.
package retrieval

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/paperscope/paperscope/llm"
)

const (
	// RelevanceThreshold filters out weak matches in both strategies.
	RelevanceThreshold = 0.3
	// TopK caps the result list in both strategies.
	TopK = 5
)

// Result is one ranked match.
type Result struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	ChunkIndex int     `json:"chunk_index"`
}

// Report is the full search result.
type Report struct {
	Query               string   `json:"query"`
	Strategy            string   `json:"strategy"` // "dense" or "lexical"
	Results             []Result `json:"results"`
	TotalChunksSearched int      `json:"total_chunks_searched"`
	Error               string   `json:"error,omitempty"`
}

// ErrorReport returns a zero-valued report carrying an error message.
func ErrorReport(query, msg string) Report {
	return Report{Query: query, Results: []Result{}, Error: msg}
}

// Config controls chunking for the dense strategy and the embedding-call
// deadline.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	Timeout      time.Duration
}

// Ranker scores document text against queries. With a nil embedder it runs
// the lexical strategy only; with one, it tries dense scoring first and
// degrades to lexical when the embedding capability fails.
type Ranker struct {
	embedder llm.Provider
	cfg      Config
}

// NewRanker returns a Ranker. embedder may be nil.
func NewRanker(embedder llm.Provider, cfg Config) *Ranker {
	return &Ranker{embedder: embedder, cfg: cfg}
}

// Search ranks text against query. A query sharing no words with the
// document yields an empty result list, never an error.
func (r *Ranker) Search(ctx context.Context, query, text string) Report {
	query = strings.TrimSpace(query)
	if query == "" {
		return Report{Query: query, Strategy: "lexical", Results: []Result{}}
	}

	if r.embedder != nil {
		report, err := r.denseSearch(ctx, query, text)
		if err == nil {
			return report
		}
		slog.Warn("search: dense strategy unavailable, degrading to lexical", "error", err)
	}
	return r.lexicalSearch(query, text)
}

// rankAndTruncate applies the shared threshold/top-k policy: drop scores at
// or below the threshold, order by descending similarity with ascending
// chunk index as tiebreak, keep the best TopK.
func rankAndTruncate(results []Result) []Result {
	kept := results[:0]
	for _, res := range results {
		if res.Similarity > RelevanceThreshold {
			kept = append(kept, res)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Similarity != kept[j].Similarity {
			return kept[i].Similarity > kept[j].Similarity
		}
		return kept[i].ChunkIndex < kept[j].ChunkIndex
	})
	if len(kept) > TopK {
		kept = kept[:TopK]
	}
	if kept == nil {
		kept = []Result{}
	}
	return kept
}
