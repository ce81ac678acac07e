// Package methodology classifies a paper's research design and technique
// mentions. The heuristic path matches the shared keyword sets and fills a
// narrative template; when a completion capability is configured, a
// structured six-part breakdown is requested on top and reported alongside
// the heuristic output. Completion failure degrades to heuristic-only,
// never to an error.
package methodology

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/paperscope/paperscope/llm"
	"github.com/paperscope/paperscope/patterns"
)

// Report is the methodology classification result.
type Report struct {
	Analysis         string   `json:"methodology_analysis"`
	ModelAnalysis    string   `json:"model_analysis,omitempty"` // raw completion, full strategy only
	DesignCategories []string `json:"design_categories"`
	ResearchMethods  []string `json:"research_methods"`
	Techniques       []string `json:"extracted_techniques"`
	Confidence       float64  `json:"methodology_confidence"`
	Error            string   `json:"error,omitempty"`
}

// ErrorReport returns a zero-valued report carrying an error message.
func ErrorReport(msg string) Report {
	return Report{
		Analysis:         "Unable to extract methodology information",
		DesignCategories: []string{},
		ResearchMethods:  []string{},
		Techniques:       []string{},
		Error:            msg,
	}
}

const (
	// heuristicConfidence reflects pattern-only classification.
	heuristicConfidence = 0.7
	// modelConfidence applies when the completion succeeded.
	modelConfidence = 0.85

	// promptWindowChars bounds the text sent to the completion capability.
	promptWindowChars = 4000
	completionTokens  = 1000

	maxMethods    = 10
	maxTechniques = 5
)

const analysisPrompt = `Analyze the following research paper text and extract the methodology:

1. Research Design (experimental, observational, theoretical, etc.)
2. Data Collection Methods
3. Analysis Techniques
4. Tools and Technologies Used
5. Sample Size and Population
6. Variables and Measurements

Text: %s

Provide a structured analysis.`

// Classifier detects research design and techniques.
type Classifier struct {
	completion llm.Provider // nil = degraded strategy
	timeout    time.Duration
}

// NewClassifier returns a Classifier. completion may be nil.
func NewClassifier(completion llm.Provider, timeout time.Duration) *Classifier {
	return &Classifier{completion: completion, timeout: timeout}
}

// Classify runs keyword classification and, when available, the
// completion-backed breakdown.
func (c *Classifier) Classify(ctx context.Context, text string) Report {
	lower := strings.ToLower(text)

	var categories []string
	for _, dc := range patterns.DesignCategories {
		if patterns.ContainsAny(lower, dc.Keywords) {
			categories = append(categories, dc.Name)
		}
	}

	var methods []string
	for _, kw := range patterns.MethodKeywords {
		if strings.Contains(lower, kw) {
			methods = append(methods, kw)
		}
	}

	var techniques []string
	for _, kw := range patterns.TechniqueKeywords {
		if strings.Contains(lower, kw) {
			techniques = append(techniques, kw)
		}
	}
	if len(techniques) > maxTechniques {
		techniques = techniques[:maxTechniques]
	}

	report := Report{
		Analysis:         narrative(lower, categories, methods),
		DesignCategories: emptyIfNil(categories),
		ResearchMethods:  emptyIfNil(capStrings(methods, maxMethods)),
		Techniques:       emptyIfNil(techniques),
		Confidence:       heuristicConfidence,
	}

	if c.completion != nil {
		prompt := fmt.Sprintf(analysisPrompt, window(text, promptWindowChars))
		out, err := llm.CompleteChecked(ctx, c.completion, prompt, completionTokens, c.timeout)
		if err != nil {
			slog.Warn("methodology: completion unavailable, heuristic report only", "error", err)
		} else {
			report.ModelAnalysis = out
			report.Confidence = modelConfidence
		}
	}

	return report
}

// narrative renders the heuristic template report.
func narrative(lower string, categories, methods []string) string {
	design := "Not clearly identified"
	if len(categories) > 0 {
		design = strings.Join(categories, ", ")
	}

	collection := "Mixed methods"
	switch {
	case patterns.ContainsAny(lower, []string{"survey", "questionnaire"}):
		collection = "Survey/Questionnaire based"
	case patterns.ContainsAny(lower, []string{"experiment", "algorithm"}):
		collection = "Experimental/Computational"
	}

	analysis := "Standard analytical methods"
	if len(methods) > 0 {
		n := len(methods)
		if n > maxTechniques {
			n = maxTechniques
		}
		analysis = strings.Join(methods[:n], ", ")
	}

	tools := "General computational tools"
	switch {
	case patterns.ContainsAny(lower, []string{"machine learning", " ai ", "neural"}):
		tools = "Machine Learning/AI"
	case patterns.ContainsAny(lower, []string{"statistical", "regression"}):
		tools = "Statistical Analysis"
	}

	sample := "Standard sample size"
	if patterns.ContainsAny(lower, []string{"large", "big data", "dataset"}) {
		sample = "Large scale"
	}

	return fmt.Sprintf(
		"Research Design: %s\n\nData Collection Methods: %s\n\nAnalysis Techniques: %s\n\nTools and Technologies: %s\n\nSample Size: %s",
		design, collection, analysis, tools, sample)
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

func capStrings(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
