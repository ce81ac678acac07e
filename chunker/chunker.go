// Package chunker splits canonical text into overlapping, position-tagged
// segments used as the unit of retrieval scoring. Splitting happens on
// whitespace-delimited word boundaries only; a word is never cut in half.
package chunker

import "strings"

// Chunk is a bounded substring of the source text. StartOffset and
// EndOffset are byte offsets into the original text, so Text ==
// source[StartOffset:EndOffset].
type Chunk struct {
	Index       int    `json:"index"`
	Text        string `json:"text"`
	StartOffset int    `json:"start_offset"`
	EndOffset   int    `json:"end_offset"`
}

const (
	// DefaultSize is the chunk size in words.
	DefaultSize = 200
	// DefaultOverlap is how many words consecutive chunks share.
	DefaultOverlap = 40
	// minSubstantialChars drops trailing chunks shorter than this, which
	// would otherwise be near-duplicates of the previous chunk's overlap.
	minSubstantialChars = 50
)

type span struct{ start, end int }

// Split breaks text into chunks of at most size words, each chunk after the
// first starting overlap words before the previous chunk's end. The output
// is fully determined by (text, size, overlap). Invalid parameters are
// clamped: size <= 0 becomes DefaultSize, overlap outside [0, size) becomes
// size/5.
func Split(text string, size, overlap int) []Chunk {
	if size <= 0 {
		size = DefaultSize
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 5
	}

	words := wordSpans(text)
	if len(words) == 0 {
		return nil
	}

	stride := size - overlap
	var chunks []Chunk
	for start := 0; start < len(words); start += stride {
		end := start + size
		last := end >= len(words)
		if last {
			end = len(words)
		}

		s, e := words[start].start, words[end-1].end
		body := text[s:e]

		// A short trailing remainder carries no new content beyond the
		// previous chunk's overlap.
		if last && len(chunks) > 0 && len(strings.TrimSpace(body)) < minSubstantialChars {
			break
		}

		chunks = append(chunks, Chunk{
			Index:       len(chunks),
			Text:        body,
			StartOffset: s,
			EndOffset:   e,
		})
		if last {
			break
		}
	}
	return chunks
}

// wordSpans returns the byte ranges of whitespace-delimited words.
func wordSpans(text string) []span {
	var spans []span
	start := -1
	for i, r := range text {
		if r == ' ' || r == '\n' || r == '\t' || r == '\r' {
			if start >= 0 {
				spans = append(spans, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}
