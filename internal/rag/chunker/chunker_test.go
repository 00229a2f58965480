package chunker_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/rag/chunker"
	"github.com/akolanti/docuquery/internal/rag/tokenizer"
)

// wordMeasurer counts whitespace-separated words as tokens so the chunking
// math in these tests is exact without a real BPE encoder.
type wordMeasurer struct{}

func (wordMeasurer) CountTokens(text string) int {
	return len(strings.Fields(text))
}

func (wordMeasurer) Tail(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return text
	}
	return strings.Join(words[len(words)-n:], " ")
}

func repeatSentence(word string, words int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = word
	}
	return strings.Join(parts, " ") + "."
}

func TestChunk_EmptyInput(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 100, 10)

	for _, input := range []string{"", "   ", "\n\t\n", "..."} {
		if got := c.Chunk(input, "doc-1"); len(got) != 0 {
			t.Errorf("Chunk(%q) produced %d chunks, want 0", input, len(got))
		}
	}
}

func TestChunk_SingleShortText(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 100, 10)

	chunks := c.Chunk("the quick brown fox. jumps over the dog.", "doc-1")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].ChunkIndex != 0 {
		t.Errorf("ChunkIndex got %d, want 0", chunks[0].ChunkIndex)
	}
	if chunks[0].DocumentId != "doc-1" {
		t.Errorf("DocumentId got %s", chunks[0].DocumentId)
	}
	if chunks[0].Text != "the quick brown fox jumps over the dog" {
		t.Errorf("Text got %q", chunks[0].Text)
	}
	if len(chunks[0].PageNumbers) != 1 || chunks[0].PageNumbers[0] != 1 {
		t.Errorf("PageNumbers got %v, want [1]", chunks[0].PageNumbers)
	}
	if chunks[0].TokenCount != 8 {
		t.Errorf("TokenCount got %d, want 8", chunks[0].TokenCount)
	}
}

func TestChunk_TokenBoundAndOverlap(t *testing.T) {
	const chunkSize = 100
	const overlap = 10
	c := chunker.New(wordMeasurer{}, chunkSize, overlap)
	m := wordMeasurer{}

	// 12 sentences of 25 words: 4 fit per chunk, then the overlap tail
	// carries 10 words into the next one
	var sb strings.Builder
	for i := 0; i < 12; i++ {
		sb.WriteString(repeatSentence(fmt.Sprintf("w%d", i), 25))
		sb.WriteString(" ")
	}

	chunks := c.Chunk(sb.String(), "doc-1")
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d, indices must be dense", i, chunk.ChunkIndex)
		}
		// budget holds for every chunk built from more than one sentence
		if got := m.CountTokens(chunk.Text); got > chunkSize+overlap {
			t.Errorf("chunk %d has %d tokens, exceeds budget plus overlap", i, got)
		}
	}

	// each successor starts with the token tail of its predecessor
	for i := 1; i < len(chunks); i++ {
		tail := m.Tail(chunks[i-1].Text, overlap)
		if !strings.HasPrefix(chunks[i].Text, strings.TrimSpace(tail)) {
			t.Errorf("chunk %d does not start with the overlap tail of chunk %d", i, i-1)
		}
	}
}

func TestChunk_OversizedSentencePassesWhole(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 50, 5)

	text := repeatSentence("big", 200)
	chunks := c.Chunk(text, "doc-1")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].TokenCount != 200 {
		t.Errorf("oversized sentence was split, TokenCount got %d, want 200", chunks[0].TokenCount)
	}
}

func TestChunk_PageProvenance(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 100, 10)

	text := "\n[Page 1]\nfirst page sentence one. first page sentence two.\n\n[Page 2]\nsecond page sentence.\n\n[Page 3]\nthird page sentence.\n"
	chunks := c.Chunk(text, "doc-1")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if strings.Contains(chunks[0].Text, "[Page") {
		t.Errorf("page markers leaked into chunk text: %q", chunks[0].Text)
	}
	want := []int{1, 2, 3}
	if len(chunks[0].PageNumbers) != len(want) {
		t.Fatalf("PageNumbers got %v, want %v", chunks[0].PageNumbers, want)
	}
	for i, p := range want {
		if chunks[0].PageNumbers[i] != p {
			t.Errorf("PageNumbers got %v, want %v", chunks[0].PageNumbers, want)
			break
		}
	}
}

func TestChunk_MidSentenceMarker(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 100, 10)

	text := "the report continues [Page 2] on the next page."
	chunks := c.Chunk(text, "doc-1")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "the report continues on the next page" {
		t.Errorf("Text got %q, marker removal must not leave doubled spaces", chunks[0].Text)
	}
	if strings.Contains(chunks[0].Text, "  ") {
		t.Errorf("doubled space survived in %q", chunks[0].Text)
	}
	if len(chunks[0].PageNumbers) != 1 || chunks[0].PageNumbers[0] != 2 {
		t.Errorf("PageNumbers got %v, want [2]", chunks[0].PageNumbers)
	}
}

func TestChunk_PageSplitAcrossChunks(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 30, 5)

	text := "[Page 1] " + repeatSentence("one", 25) + " [Page 2] " + repeatSentence("two", 25)
	chunks := c.Chunk(text, "doc-1")
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	if len(chunks[0].PageNumbers) != 1 || chunks[0].PageNumbers[0] != 1 {
		t.Errorf("chunk 0 pages got %v, want [1]", chunks[0].PageNumbers)
	}
	// second chunk starts with the overlap tail from page 1
	for _, p := range []int{1, 2} {
		found := false
		for _, got := range chunks[1].PageNumbers {
			if got == p {
				found = true
			}
		}
		if !found {
			t.Errorf("chunk 1 pages got %v, want both 1 and 2", chunks[1].PageNumbers)
		}
	}
}

func TestChunk_FullSizeWithRealTokenizer(t *testing.T) {
	m := tokenizer.Get()
	if m == nil {
		t.Fatal("token encoding failed to load")
	}
	c := chunker.New(m, config.ChunkSize, config.ChunkOverlap)

	// a report-sized document, around 1300 words
	var sb strings.Builder
	for i := 0; i < 120; i++ {
		sb.WriteString(fmt.Sprintf("Section %d reviews the quarterly revenue and growth figures in detail. ", i))
	}
	text := sb.String()

	chunks := c.Chunk(text, "doc-1")
	if len(chunks) < 3 {
		t.Fatalf("got %d chunks at the shipped sizes, want at least 3", len(chunks))
	}

	totalTokens := m.CountTokens(strings.TrimSpace(text))
	chunkTokens := 0
	for i, chunk := range chunks {
		if chunk.ChunkIndex != i {
			t.Errorf("chunk %d has index %d, indices must be dense", i, chunk.ChunkIndex)
		}
		if chunk.TokenCount > config.ChunkSize+config.ChunkOverlap {
			t.Errorf("chunk %d has %d tokens, exceeds %d", i, chunk.TokenCount, config.ChunkSize+config.ChunkOverlap)
		}
		if len(chunk.PageNumbers) != 1 || chunk.PageNumbers[0] != 1 {
			t.Errorf("chunk %d pages got %v, want [1] for unmarked text", i, chunk.PageNumbers)
		}
		chunkTokens += chunk.TokenCount
	}
	// overlap duplicates tokens across neighbours, so the chunks together
	// must carry more than the source
	if chunkTokens <= totalTokens {
		t.Errorf("chunks sum to %d tokens, source has %d, overlap is missing", chunkTokens, totalTokens)
	}
	if !strings.Contains(chunks[len(chunks)-1].Text, "Section 119") {
		t.Error("final sentence missing from the last chunk")
	}
}

func TestChunk_WhitespaceNormalized(t *testing.T) {
	c := chunker.New(wordMeasurer{}, 100, 10)

	chunks := c.Chunk("hello   world.\n\n\tgoodbye    world.", "doc-1")
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "hello world goodbye world" {
		t.Errorf("Text got %q, whitespace runs must collapse", chunks[0].Text)
	}
}
