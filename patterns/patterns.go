// Package patterns is the shared pattern library for the analysis engine.
// Every regular expression and keyword set used by citation, methodology,
// limitation, and concept extraction is defined here once, so the full and
// degraded strategies cannot drift apart on what counts as a citation or a
// concept. The package holds no state: pure data plus small matcher helpers.
package patterns

import (
	"regexp"
	"strings"
)

// Citation mention patterns, applied independently and unioned.
var (
	// NumericCitation matches bracketed reference markers: [1], [42].
	NumericCitation = regexp.MustCompile(`\[(\d+)\]`)

	// ParentheticalCitation matches parenthesized mentions that contain a
	// four-digit year: (Smith, 2023), (see Jones 2019, p. 4).
	ParentheticalCitation = regexp.MustCompile(`\(([^)]*\d{4}[^)]*)\)`)

	// NarrativeCitation matches in-prose mentions: Smith et al., 2023.
	NarrativeCitation = regexp.MustCompile(`[A-Z][a-z]+ et al\.?, \d{4}`)

	// Year matches four-digit years in [1900, 2099].
	Year = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	// AuthorYear captures a capitalized name-like token sequence adjacent
	// to a year token, used for candidate author extraction.
	AuthorYear = regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:et\s+al\.?\s*)?\(?(?:19|20)\d{2}\)?`)
)

// Concept extraction patterns.
var (
	// ProperNounPhrase matches capitalized word runs: "Neural Network",
	// "Stanford University".
	ProperNounPhrase = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

	// Acronym matches runs of two or more uppercase letters: "CNN", "HTTP".
	Acronym = regexp.MustCompile(`\b[A-Z]{2,}\b`)
)

// ConceptStopwords are capitalized function words that the proper-noun
// pattern matches but that carry no domain meaning.
var ConceptStopwords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"With": true, "From": true, "For": true, "And": true, "Or": true,
	"But": true, "In": true, "On": true, "At": true, "To": true, "Of": true,
	"By": true, "Our": true, "Their": true, "However": true, "Therefore": true,
}

// DesignCategories maps research-design category names to the keyword sets
// that indicate them. A category applies when the text contains at least
// one keyword as a case-insensitive substring.
var DesignCategories = []DesignCategory{
	{Name: "experimental", Keywords: []string{"experiment", "trial", "control group"}},
	{Name: "observational", Keywords: []string{"observe", "survey", "questionnaire", "interview"}},
	{Name: "theoretical", Keywords: []string{"theory", "model", "framework", "conceptual"}},
	{Name: "computational", Keywords: []string{"algorithm", "simulation", "computation", "software"}},
}

// DesignCategory is one research-design category with its indicator keywords.
type DesignCategory struct {
	Name     string
	Keywords []string
}

// MethodKeywords are generic methodology terms collected into the
// research-methods list, in this fixed order.
var MethodKeywords = []string{
	"experiment", "survey", "analysis", "model", "algorithm",
	"approach", "method", "technique", "framework", "system",
	"machine learning", "deep learning", "neural network",
	"regression", "classification", "clustering",
}

// TechniqueKeywords name specific analysis techniques reported separately
// from the generic method list.
var TechniqueKeywords = []string{
	"machine learning", "deep learning", "neural network", "regression",
	"classification", "clustering", "statistical analysis", "correlation",
	"anova", "t-test", "chi-square", "factor analysis",
}

// LimitationIndicators are phrases that flag limitation or future-work
// language in a sentence.
var LimitationIndicators = []string{
	"limitation", "constraint", "drawback", "shortcoming", "weakness",
	"challenge", "future work", "future research", "further study",
	"not addressed", "remains unclear", "needs investigation",
}

// GapCategories pairs a gap-report category with the topical keyword that
// selects it, checked in order.
var GapCategories = []GapCategory{
	{Name: "Methodological", Keyword: "method"},
	{Name: "Theoretical", Keyword: "theory"},
	{Name: "Empirical", Keyword: "data"},
	{Name: "Technological", Keyword: "technology"},
}

// GapCategory is one gap category with its selector keyword.
type GapCategory struct {
	Name    string
	Keyword string
}

// SplitSentences splits text on sentence terminators (. ? !) followed by
// whitespace or end of input. The same splitter backs lexical search,
// concept co-occurrence scanning, and gap detection so that "a sentence"
// means the same thing everywhere.
func SplitSentences(text string) []string {
	var sentences []string
	var cur strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '?' || runes[i] == '!' {
			if i+1 >= len(runes) || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				if s := strings.TrimSpace(cur.String()); s != "" {
					sentences = append(sentences, s)
				}
				cur.Reset()
			}
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// ContainsAny reports whether text contains at least one of the keywords
// as a case-insensitive substring.
func ContainsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
