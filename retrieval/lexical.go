package retrieval

import (
	"strings"

	"github.com/paperscope/paperscope/patterns"
)

// minSentenceChars skips fragments too short to be meaningful matches.
const minSentenceChars = 20

// lexicalSearch scores each sentence by the fraction of query words it
// contains. Pure heuristic with no external dependencies; always available.
func (r *Ranker) lexicalSearch(query, text string) Report {
	queryWords := strings.Fields(strings.ToLower(query))
	sentences := patterns.SplitSentences(text)

	report := Report{
		Query:               query,
		Strategy:            "lexical",
		TotalChunksSearched: len(sentences),
	}
	if len(queryWords) == 0 {
		report.Results = []Result{}
		return report
	}

	var results []Result
	for i, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < minSentenceChars {
			continue
		}
		lower := strings.ToLower(sentence)
		matched := 0
		for _, w := range queryWords {
			if strings.Contains(lower, w) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		results = append(results, Result{
			Text:       sentence,
			Similarity: float64(matched) / float64(len(queryWords)),
			ChunkIndex: i,
		})
	}

	report.Results = rankAndTruncate(results)
	return report
}
