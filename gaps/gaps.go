// Package gaps detects limitation and future-work language in a paper and
// categorizes it. A sentence qualifies when it is at least 30 characters
// after trimming and contains one of the shared limitation indicators. The
// full strategy adds a completion-backed narrative over a bounded window;
// completion failure degrades to the heuristic report.
package gaps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/paperscope/paperscope/llm"
	"github.com/paperscope/paperscope/patterns"
)

// Report is the research-gap identification result.
type Report struct {
	Narrative           string   `json:"research_gaps"`
	ModelAnalysis       string   `json:"model_analysis,omitempty"` // raw completion, full strategy only
	LimitationSentences []string `json:"identified_limitations"`
	Categories          []string `json:"gap_categories"`
	Confidence          float64  `json:"confidence_score"`
	Error               string   `json:"error,omitempty"`
}

// ErrorReport returns a zero-valued report carrying an error message.
func ErrorReport(msg string) Report {
	return Report{
		Narrative:           "Unable to identify research gaps",
		LimitationSentences: []string{},
		Categories:          []string{},
		Error:               msg,
	}
}

const (
	minGapSentenceChars = 30
	maxGapSentences     = 5

	confidenceFound    = 0.6
	confidenceNotFound = 0.3

	promptWindowChars = 4000
	completionTokens  = 800
)

const gapPrompt = `Analyze this research paper and identify:

1. Limitations mentioned by authors
2. Potential research gaps
3. Future work suggestions
4. Unexplored areas
5. Methodological improvements needed

Text: %s

Provide specific, actionable research gap identification.`

// Identifier finds limitation/future-work language.
type Identifier struct {
	completion llm.Provider // nil = degraded strategy
	timeout    time.Duration
}

// NewIdentifier returns an Identifier. completion may be nil.
func NewIdentifier(completion llm.Provider, timeout time.Duration) *Identifier {
	return &Identifier{completion: completion, timeout: timeout}
}

// Identify extracts gap sentences and categorizes them.
func (g *Identifier) Identify(ctx context.Context, text string) Report {
	var gapSentences []string
	for _, sentence := range patterns.SplitSentences(text) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) < minGapSentenceChars {
			continue
		}
		if patterns.ContainsAny(sentence, patterns.LimitationIndicators) {
			gapSentences = append(gapSentences, sentence)
		}
	}

	var categories []string
	for _, gc := range patterns.GapCategories {
		for _, s := range gapSentences {
			if strings.Contains(strings.ToLower(s), gc.Keyword) {
				categories = append(categories, gc.Name)
				break
			}
		}
	}
	if len(categories) == 0 {
		categories = []string{"General"}
	}

	confidence := confidenceNotFound
	if len(gapSentences) > 0 {
		confidence = confidenceFound
	}

	kept := gapSentences
	if len(kept) > maxGapSentences {
		kept = kept[:maxGapSentences]
	}
	if kept == nil {
		kept = []string{}
	}

	report := Report{
		Narrative:           narrative(categories, kept),
		LimitationSentences: kept,
		Categories:          categories,
		Confidence:          confidence,
	}

	if g.completion != nil {
		prompt := fmt.Sprintf(gapPrompt, window(text, promptWindowChars))
		out, err := llm.CompleteChecked(ctx, g.completion, prompt, completionTokens, g.timeout)
		if err != nil {
			slog.Warn("gaps: completion unavailable, heuristic report only", "error", err)
		} else {
			report.ModelAnalysis = out
		}
	}

	return report
}

// narrative renders the heuristic gap summary.
func narrative(categories, gapSentences []string) string {
	present := func(name string) string {
		for _, c := range categories {
			if c == name {
				return "Present"
			}
		}
		return "Not identified"
	}

	var limitations strings.Builder
	if len(gapSentences) == 0 {
		limitations.WriteString("- No explicit limitations mentioned\n")
	} else {
		n := len(gapSentences)
		if n > 3 {
			n = 3
		}
		for _, s := range gapSentences[:n] {
			if len(s) > 100 {
				s = s[:100] + "..."
			}
			limitations.WriteString("- " + s + "\n")
		}
	}

	return fmt.Sprintf(`Identified Research Gaps:

1. Methodological Gaps: %s
2. Theoretical Gaps: %s
3. Empirical Gaps: %s
4. Technological Gaps: %s

Key Limitations Found:
%s`,
		present("Methodological"), present("Theoretical"),
		present("Empirical"), present("Technological"),
		strings.TrimRight(limitations.String(), "\n"))
}

// window truncates text to at most n characters on a word boundary.
func window(text string, n int) string {
	if len(text) <= n {
		return text
	}
	cut := strings.LastIndex(text[:n], " ")
	if cut <= 0 {
		cut = n
	}
	return text[:cut]
}
