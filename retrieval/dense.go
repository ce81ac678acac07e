package retrieval

import (
	"context"
	"fmt"

	"github.com/paperscope/paperscope/chunker"
	"github.com/paperscope/paperscope/vecindex"
)

// denseSearch embeds overlapping word chunks plus the query and ranks
// chunks by cosine similarity via a per-request vector index. Any failure
// is returned to the caller, which degrades to the lexical strategy.
func (r *Ranker) denseSearch(ctx context.Context, query, text string) (Report, error) {
	chunks := chunker.Split(text, r.cfg.ChunkSize, r.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return Report{Query: query, Strategy: "dense", Results: []Result{}}, nil
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	// One batch: all chunk texts plus the query as the final entry.
	texts := make([]string, 0, len(chunks)+1)
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}
	texts = append(texts, query)

	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return Report{}, fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(texts) || len(vectors[0]) == 0 {
		return Report{}, fmt.Errorf("embedding returned %d vectors for %d texts", len(vectors), len(texts))
	}
	queryVec := vectors[len(vectors)-1]

	ix, err := vecindex.New(len(queryVec))
	if err != nil {
		return Report{}, err
	}
	defer ix.Close()

	for i, c := range chunks {
		if len(vectors[i]) != len(queryVec) {
			return Report{}, fmt.Errorf("chunk %d: inconsistent embedding dimension", c.Index)
		}
		if err := ix.Add(ctx, c.Index, vectors[i]); err != nil {
			return Report{}, fmt.Errorf("indexing chunk %d: %w", c.Index, err)
		}
	}

	matches, err := ix.Search(ctx, queryVec, TopK)
	if err != nil {
		return Report{}, fmt.Errorf("knn search: %w", err)
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		if m.ID < 0 || m.ID >= len(chunks) {
			continue
		}
		results = append(results, Result{
			Text:       chunks[m.ID].Text,
			Similarity: m.Similarity,
			ChunkIndex: m.ID,
		})
	}

	return Report{
		Query:               query,
		Strategy:            "dense",
		Results:             rankAndTruncate(results),
		TotalChunksSearched: len(chunks),
	}, nil
}
