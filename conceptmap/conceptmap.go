// Package conceptmap builds a small concept graph from document text. Nodes
// are salient terms; edges record that two terms co-occur in a sentence.
// The heuristic path extracts proper-noun phrases and acronyms; the full
// path additionally asks the completion capability for typed named entities
// and merges them in. Completion failure degrades to the heuristic graph.
package conceptmap

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/paperscope/paperscope/llm"
	"github.com/paperscope/paperscope/patterns"
)

// Node is one concept in the graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"` // "concept" or a named-entity type
}

// Edge records a sentence-level co-occurrence between two nodes.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Report is the concept-map result.
type Report struct {
	Nodes        []Node `json:"nodes"`
	Edges        []Edge `json:"edges"`
	ConceptCount int    `json:"concept_count"`
	Error        string `json:"error,omitempty"`
}

// ErrorReport returns an empty graph carrying an error message.
func ErrorReport(msg string) Report {
	return Report{Nodes: []Node{}, Edges: []Edge{}, Error: msg}
}

const (
	// MaxNodes caps the graph so it stays renderable.
	MaxNodes = 20

	minConceptChars = 3
	maxConceptChars = 30

	// degradedSentenceCap bounds co-occurrence scanning without a
	// completion capability.
	degradedSentenceCap = 20

	promptWindowChars = 3000
	completionTokens  = 600
)

const entityPrompt = `You are an entity extraction engine for research papers.
Given the following text, extract the named entities.

ENTITY TYPES (use exactly these values):
- person       : a named individual
- organization : a company, university, lab, or institution
- product      : a named system, tool, dataset, or model
- event        : a named conference, workshop, or occurrence

Return a JSON object with exactly one key:
  "entities" : array of {"name": string, "type": string}

Rules:
- Only include entities clearly supported by the text.
- If there are none, return an empty array.
- Do NOT include any text outside the JSON object.

Text: %s`

// Builder constructs concept graphs.
type Builder struct {
	completion llm.Provider // nil = degraded strategy
	timeout    time.Duration
}

// NewBuilder returns a Builder. completion may be nil.
func NewBuilder(completion llm.Provider, timeout time.Duration) *Builder {
	return &Builder{completion: completion, timeout: timeout}
}

// Build extracts concepts and links those that share a sentence. Node order
// follows first appearance in the text. Edges never connect a node to
// itself and each unordered pair appears at most once.
func (b *Builder) Build(ctx context.Context, text string) Report {
	concepts := extractConcepts(text)

	if b.completion != nil {
		entities, err := b.extractEntities(ctx, text)
		if err != nil {
			slog.Warn("conceptmap: entity extraction unavailable, heuristic concepts only", "error", err)
		} else {
			concepts = mergeEntities(concepts, entities)
		}
	}

	if len(concepts) > MaxNodes {
		concepts = concepts[:MaxNodes]
	}

	sentenceCap := degradedSentenceCap
	if b.completion != nil {
		sentenceCap = 0 // unbounded
	}

	return Report{
		Nodes:        concepts,
		Edges:        cooccurrenceEdges(text, concepts, sentenceCap),
		ConceptCount: len(concepts),
	}
}

// extractConcepts unions proper-noun phrases and acronyms, keeping first
// appearance order. Concepts form a case-sensitive set: "NASA" and "Nasa"
// are distinct nodes.
func extractConcepts(text string) []Node {
	seen := make(map[string]bool)
	var nodes []Node

	add := func(raw string) {
		term := strings.TrimSpace(raw)
		if len(term) < minConceptChars || len(term) > maxConceptChars {
			return
		}
		if patterns.ConceptStopwords[term] {
			return
		}
		if seen[term] {
			return
		}
		seen[term] = true
		nodes = append(nodes, Node{ID: term, Label: term, Type: "concept"})
	}

	for _, m := range patterns.ProperNounPhrase.FindAllString(text, -1) {
		add(m)
	}
	for _, m := range patterns.Acronym.FindAllString(text, -1) {
		add(m)
	}

	if nodes == nil {
		nodes = []Node{}
	}
	return nodes
}

// cooccurrenceEdges links concepts that appear in the same sentence. Node
// identity is case-sensitive but occurrence matching is not. A sentenceCap
// of 0 scans every sentence.
func cooccurrenceEdges(text string, nodes []Node, sentenceCap int) []Edge {
	sentences := patterns.SplitSentences(text)
	if sentenceCap > 0 && len(sentences) > sentenceCap {
		sentences = sentences[:sentenceCap]
	}

	loweredIDs := make([]string, len(nodes))
	for i, n := range nodes {
		loweredIDs[i] = strings.ToLower(n.ID)
	}

	seen := make(map[string]bool)
	edges := []Edge{}
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)

		var present []string
		for i, n := range nodes {
			if strings.Contains(lower, loweredIDs[i]) {
				present = append(present, n.ID)
			}
		}

		for i := 0; i < len(present); i++ {
			for j := i + 1; j < len(present); j++ {
				key := present[i] + "\x00" + present[j]
				if seen[key] {
					continue
				}
				seen[key] = true
				edges = append(edges, Edge{Source: present[i], Target: present[j]})
			}
		}
	}
	return edges
}

// namedEntity is the JSON shape returned by the entity extraction call.
type namedEntity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type entityResult struct {
	Entities []namedEntity `json:"entities"`
}

var allowedEntityTypes = map[string]bool{
	"person": true, "organization": true, "product": true, "event": true,
}

func (b *Builder) extractEntities(ctx context.Context, text string) ([]namedEntity, error) {
	prompt := fmt.Sprintf(entityPrompt, window(text, promptWindowChars))
	out, err := llm.CompleteChecked(ctx, b.completion, prompt, completionTokens, b.timeout)
	if err != nil {
		return nil, err
	}

	jsonStr, err := extractJSON(out)
	if err != nil {
		return nil, fmt.Errorf("parsing entity extraction result: %w", err)
	}

	var result entityResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("unmarshalling entity extraction result: %w", err)
	}

	kept := result.Entities[:0]
	for _, e := range result.Entities {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" || !allowedEntityTypes[e.Type] {
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

// mergeEntities annotates existing nodes with entity types and appends new
// typed nodes, preserving the first-appearance order of the heuristic pass.
// Merging is case-sensitive, matching node identity.
func mergeEntities(nodes []Node, entities []namedEntity) []Node {
	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	for _, e := range entities {
		if len(e.Name) < minConceptChars || len(e.Name) > maxConceptChars {
			continue
		}
		if i, ok := index[e.Name]; ok {
			nodes[i].Type = e.Type
			continue
		}
		index[e.Name] = len(nodes)
		nodes = append(nodes, Node{ID: e.Name, Label: e.Name, Type: e.Type})
	}
	return nodes
}

// codeBlockRe strips markdown code fences from completion output.
var codeBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\n?(.*?)\\n?```")

// extractJSON finds a JSON object in completion output, tolerating code
// fences and surrounding prose.
func extractJSON(raw string) (string, error) {
	if m := codeBlockRe.FindStringSubmatch(raw); len(m) > 1 {
		raw = m[1]
	}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		return raw, nil
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1], nil
	}
	return "", fmt.Errorf("no JSON object found in response")
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
