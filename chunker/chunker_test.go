package chunker

import (
	"fmt"
	"strings"
	"testing"
)

// words builds a space-separated text of n distinct words.
func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("word%04d", i)
	}
	return strings.Join(parts, " ")
}

func TestSplitOffsetsMatchText(t *testing.T) {
	text := words(500)
	for _, c := range Split(text, 100, 20) {
		if got := text[c.StartOffset:c.EndOffset]; got != c.Text {
			t.Errorf("chunk %d: offsets do not reproduce text", c.Index)
		}
	}
}

func TestSplitChunkWordCounts(t *testing.T) {
	text := words(500)
	chunks := Split(text, 100, 20)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i, c := range chunks {
		n := len(strings.Fields(c.Text))
		if n > 100 {
			t.Errorf("chunk %d has %d words, want <= 100", i, n)
		}
		if i < len(chunks)-1 && n != 100 {
			t.Errorf("non-final chunk %d has %d words, want 100", i, n)
		}
	}
}

func TestSplitOverlap(t *testing.T) {
	text := words(300)
	chunks := Split(text, 100, 20)
	if len(chunks) < 2 {
		t.Fatal("expected at least two chunks")
	}
	first := strings.Fields(chunks[0].Text)
	second := strings.Fields(chunks[1].Text)
	// The second chunk starts 20 words before the end of the first.
	for i := 0; i < 20; i++ {
		if first[80+i] != second[i] {
			t.Fatalf("overlap word %d: %q != %q", i, first[80+i], second[i])
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	text := words(500)
	a := Split(text, 100, 20)
	b := Split(text, 100, 20)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitClampsInvalidParams(t *testing.T) {
	text := words(250)
	if got := Split(text, 0, 10); len(got) == 0 {
		t.Error("size 0 should clamp to default, got no chunks")
	}
	if got := Split(text, 100, 100); len(got) == 0 {
		t.Error("overlap >= size should clamp, got no chunks")
	}
	if got := Split(text, 100, -1); len(got) == 0 {
		t.Error("negative overlap should clamp, got no chunks")
	}
}

func TestSplitEmptyText(t *testing.T) {
	if got := Split("", 100, 20); got != nil {
		t.Errorf("Split(\"\") = %v, want nil", got)
	}
	if got := Split("   \n\t ", 100, 20); got != nil {
		t.Errorf("whitespace-only input produced %v, want nil", got)
	}
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	text := "just a handful of words well under one chunk in total size"
	chunks := Split(text, 100, 20)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q, want full input", chunks[0].Text)
	}
}

func TestSplitDropsTinyTrailingChunk(t *testing.T) {
	// 502 words with no overlap: the trailing remainder is 2 words,
	// under the substantial-content bar, and gets dropped.
	text := words(502)
	chunks := Split(text, 100, 0)
	if len(chunks) != 5 {
		t.Fatalf("got %d chunks, want 5", len(chunks))
	}
	for i, c := range chunks[1:] {
		if len(strings.TrimSpace(c.Text)) < 50 {
			t.Errorf("kept trailing chunk %d too small: %q", i+1, c.Text)
		}
	}
}

func TestSplitIndexesSequential(t *testing.T) {
	for i, c := range Split(words(500), 100, 20) {
		if c.Index != i {
			t.Errorf("chunk at position %d has Index %d", i, c.Index)
		}
	}
}
