package paperscope

import (
	"fmt"
	"time"

	"github.com/paperscope/paperscope/llm"
)

// Config holds all configuration for the analysis engine.
type Config struct {
	// Completion configures the text-generation capability. An empty
	// Provider disables it; every analysis then runs its heuristic path.
	Completion llm.Config `json:"completion" yaml:"completion"`

	// Embedding configures the embedding capability. An empty Provider
	// disables it; search then runs the lexical strategy.
	Embedding llm.Config `json:"embedding" yaml:"embedding"`

	// Chunking for dense search.
	ChunkSize    int `json:"chunk_size" yaml:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap" yaml:"chunk_overlap"`

	// MinTextLength is the extraction acceptance threshold in characters.
	MinTextLength int `json:"min_text_length" yaml:"min_text_length"`

	// CapabilityTimeout bounds each model call. Zero means no deadline.
	CapabilityTimeout time.Duration `json:"capability_timeout" yaml:"capability_timeout"`
}

// DefaultConfig returns a Config with sensible defaults for local inference.
func DefaultConfig() Config {
	return Config{
		Completion: llm.Config{
			Provider: "ollama",
			Model:    "llama3.1:8b",
			BaseURL:  "http://localhost:11434",
		},
		Embedding: llm.Config{
			Provider: "ollama",
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		ChunkSize:         200,
		ChunkOverlap:      40,
		MinTextLength:     100,
		CapabilityTimeout: 60 * time.Second,
	}
}

// DegradedConfig returns a Config with both capabilities disabled. Every
// analysis runs its heuristic path and search is lexical only.
func DegradedConfig() Config {
	cfg := DefaultConfig()
	cfg.Completion = llm.Config{}
	cfg.Embedding = llm.Config{}
	return cfg
}

// Validate reports out-of-range values. New clamps or disables such values
// instead of failing; Validate lets callers check a config strictly before
// handing it over.
func (c Config) Validate() error {
	if c.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size %d is negative", ErrInvalidConfig, c.ChunkSize)
	}
	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk_overlap %d is negative", ErrInvalidConfig, c.ChunkOverlap)
	}
	if c.ChunkSize > 0 && c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap %d must be smaller than chunk_size %d",
			ErrInvalidConfig, c.ChunkOverlap, c.ChunkSize)
	}
	if c.MinTextLength < 0 {
		return fmt.Errorf("%w: min_text_length %d is negative", ErrInvalidConfig, c.MinTextLength)
	}
	if c.CapabilityTimeout < 0 {
		return fmt.Errorf("%w: capability_timeout %s is negative", ErrInvalidConfig, c.CapabilityTimeout)
	}
	return nil
}
