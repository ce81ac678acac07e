// Package summary produces plain-language summaries and a glossary of
// technical terms. With a completion capability both come from the model;
// without one the summary falls back to lead sentences and glossary
// definitions to a fixed placeholder.
package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/paperscope/paperscope/llm"
	"github.com/paperscope/paperscope/patterns"
)

// Term is one glossary entry.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Report holds the summaries and glossary for one document.
type Report struct {
	Short    string `json:"short_summary"`
	Detailed string `json:"detailed_summary"`
	Glossary []Term `json:"glossary"`
	Error    string `json:"error,omitempty"`
}

// ErrorReport returns a zero-valued report carrying an error message.
func ErrorReport(msg string) Report {
	return Report{Glossary: []Term{}, Error: msg}
}

const (
	shortSentences    = 3
	detailedSentences = 8
	maxGlossaryTerms  = 8

	promptWindowChars = 4000
	summaryTokens     = 500
	definitionTokens  = 120

	fallbackDefinition = "Definition unavailable"
)

const shortPrompt = `Summarize the following research paper in 2-3 sentences for a general audience:

%s`

const detailedPrompt = `Write a detailed one-paragraph summary of the following research paper, covering its goal, approach, and findings:

%s`

const definitionPrompt = `Define the technical term "%s" in one plain-language sentence, as used in a research paper.`

// Summarizer generates summaries and glossaries.
type Summarizer struct {
	completion llm.Provider // nil = degraded strategy
	timeout    time.Duration
}

// NewSummarizer returns a Summarizer. completion may be nil.
func NewSummarizer(completion llm.Provider, timeout time.Duration) *Summarizer {
	return &Summarizer{completion: completion, timeout: timeout}
}

// Summarize produces both summary lengths and the glossary.
func (s *Summarizer) Summarize(ctx context.Context, text string) Report {
	report := Report{
		Short:    leadSentences(text, shortSentences),
		Detailed: leadSentences(text, detailedSentences),
		Glossary: s.glossary(ctx, text),
	}

	if s.completion == nil {
		return report
	}

	windowed := window(text, promptWindowChars)
	if out, err := llm.CompleteChecked(ctx, s.completion, fmt.Sprintf(shortPrompt, windowed), summaryTokens, s.timeout); err != nil {
		slog.Warn("summary: short summary completion unavailable, using lead sentences", "error", err)
	} else {
		report.Short = out
	}
	if out, err := llm.CompleteChecked(ctx, s.completion, fmt.Sprintf(detailedPrompt, windowed), summaryTokens, s.timeout); err != nil {
		slog.Warn("summary: detailed summary completion unavailable, using lead sentences", "error", err)
	} else {
		report.Detailed = out
	}
	return report
}

// glossary picks frequent technical terms and defines them. Term selection
// is heuristic in both strategies; only the definitions need the model.
func (s *Summarizer) glossary(ctx context.Context, text string) []Term {
	terms := glossaryTerms(text)
	entries := make([]Term, 0, len(terms))
	for _, t := range terms {
		def := fallbackDefinition
		if s.completion != nil {
			out, err := llm.CompleteChecked(ctx, s.completion, fmt.Sprintf(definitionPrompt, t), definitionTokens, s.timeout)
			if err != nil {
				slog.Warn("summary: glossary definition unavailable", "term", t, "error", err)
			} else {
				def = strings.TrimSpace(out)
			}
		}
		entries = append(entries, Term{Term: t, Definition: def})
	}
	return entries
}

// glossaryTerms returns the most frequent acronyms and proper-noun phrases,
// most frequent first with first appearance as tiebreak.
func glossaryTerms(text string) []string {
	count := make(map[string]int)
	first := make(map[string]int)
	display := make(map[string]string)

	record := func(raw string, pos int) {
		term := strings.TrimSpace(raw)
		if len(term) < 3 || len(term) > 30 || patterns.ConceptStopwords[term] {
			return
		}
		key := strings.ToLower(term)
		if _, ok := first[key]; !ok {
			first[key] = pos
			display[key] = term
		}
		count[key]++
	}

	for i, m := range patterns.Acronym.FindAllString(text, -1) {
		record(m, i)
	}
	offset := len(count)
	for i, m := range patterns.ProperNounPhrase.FindAllString(text, -1) {
		record(m, offset+i)
	}

	keys := make([]string, 0, len(count))
	for k := range count {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if count[keys[i]] != count[keys[j]] {
			return count[keys[i]] > count[keys[j]]
		}
		return first[keys[i]] < first[keys[j]]
	})
	if len(keys) > maxGlossaryTerms {
		keys = keys[:maxGlossaryTerms]
	}

	terms := make([]string, 0, len(keys))
	for _, k := range keys {
		terms = append(terms, display[k])
	}
	return terms
}

// leadSentences joins the first n sentences of the text.
func leadSentences(text string, n int) string {
	sentences := patterns.SplitSentences(text)
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	return strings.Join(sentences, " ")
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
