package paperscope

import (
	"errors"

	"github.com/paperscope/paperscope/llm"
)

var (
	// ErrEmptyText is reported when an analysis is asked to run on empty or
	// whitespace-only text.
	ErrEmptyText = errors.New("paperscope: empty document text")

	// ErrCapabilityUnavailable marks a model capability as unreachable or
	// misbehaving. It is the llm package's sentinel re-exported so callers
	// can match degradation causes without importing llm.
	ErrCapabilityUnavailable = llm.ErrUnavailable

	// ErrInvalidConfig is returned by Config.Validate for out-of-range
	// configuration values.
	ErrInvalidConfig = errors.New("paperscope: invalid configuration")
)
