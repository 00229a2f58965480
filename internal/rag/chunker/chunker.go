package chunker

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

var pageMarkerRegex = regexp.MustCompile(`\[Page (\d+)\]`)

// TextMeasurer is the token accounting the chunker sizes against.
type TextMeasurer interface {
	CountTokens(text string) int
	Tail(text string, n int) string
}

// Chunker splits extracted text into token-bounded passages with a token-level
// overlap tail between neighbours. Page markers are stripped from the stored
// text but their positions are kept so each chunk knows which pages it spans.
type Chunker struct {
	measurer  TextMeasurer
	chunkSize int
	overlap   int
	logger    *logger_i.Logger
}

func New(measurer TextMeasurer, chunkSize int, overlap int) *Chunker {
	return &Chunker{
		measurer:  measurer,
		chunkSize: chunkSize,
		overlap:   overlap,
		logger:    logger_i.NewLogger("Chunker"),
	}
}

// Chunk recomputes the full chunk sequence for text. Indices are dense from 0
// in emission order. Empty input yields zero chunks - the caller decides that
// means the ingest failed.
func (c *Chunker) Chunk(text string, documentId string) []docModel.Chunk {
	cleaned, spans := c.cleanText(text)
	sentences := splitSentences(cleaned, spans)
	if len(sentences) == 0 {
		return nil
	}

	var chunks []docModel.Chunk
	var buffer string
	bufferTokens := 0
	pages := map[int]struct{}{}
	var lastPages []int
	chunkIndex := 0

	for _, sentence := range sentences {
		sentenceTokens := c.measurer.CountTokens(sentence.text)

		// overflow check only fires on a non-empty buffer: a single sentence
		// bigger than the whole budget still goes out in one piece
		if bufferTokens+sentenceTokens > c.chunkSize && buffer != "" {
			chunks = append(chunks, c.closeChunk(buffer, chunkIndex, documentId, pages))
			chunkIndex++

			// seed the next buffer with the token-level tail of the one we
			// just closed - no sentence realignment, overlap is exact tokens
			overlapText := c.measurer.Tail(buffer, c.overlap)
			buffer = overlapText + " " + sentence.text
			bufferTokens = c.measurer.CountTokens(buffer)

			pages = map[int]struct{}{}
			addPages(pages, lastPages)
			addPages(pages, sentence.pages)
		} else {
			if buffer == "" {
				buffer = sentence.text
			} else {
				buffer += " " + sentence.text
			}
			bufferTokens += sentenceTokens
			addPages(pages, sentence.pages)
		}
		lastPages = sentence.pages
	}

	if strings.TrimSpace(buffer) != "" {
		chunks = append(chunks, c.closeChunk(buffer, chunkIndex, documentId, pages))
	}

	c.logger.Debug("chunked document", "documentId", documentId, "chunks", len(chunks))
	return chunks
}

func (c *Chunker) closeChunk(buffer string, index int, documentId string, pages map[int]struct{}) docModel.Chunk {
	text := strings.TrimSpace(buffer)
	return docModel.Chunk{
		DocumentId:  documentId,
		ChunkIndex:  index,
		Text:        text,
		PageNumbers: sortedPages(pages),
		TokenCount:  c.measurer.CountTokens(text),
	}
}

// pageSpan marks that from offset start (in the cleaned text) onward the
// content came from the given page, until the next span takes over.
type pageSpan struct {
	start int
	page  int
}

// cleanText collapses whitespace runs to single spaces and strips the inline
// "[Page N]" markers, remembering where each page began in the cleaned text.
func (c *Chunker) cleanText(text string) (string, []pageSpan) {
	normalized := strings.Join(strings.Fields(text), " ")

	matches := pageMarkerRegex.FindAllStringSubmatchIndex(normalized, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(normalized), nil
	}

	var sb strings.Builder
	var spans []pageSpan
	last := 0
	for _, m := range matches {
		segment := normalized[last:m[0]]
		// a mid-sentence marker sits between two spaces, keep only one
		if strings.HasSuffix(segment, " ") && m[1] < len(normalized) && normalized[m[1]] == ' ' {
			segment = segment[:len(segment)-1]
		}
		sb.WriteString(segment)
		page, _ := strconv.Atoi(normalized[m[2]:m[3]])
		spans = append(spans, pageSpan{start: sb.Len(), page: page})
		last = m[1]
	}
	sb.WriteString(normalized[last:])

	return sb.String(), spans
}

type sentence struct {
	text  string
	pages []int
}

// splitSentences breaks on . ! ? terminators, drops empty fragments and tags
// each sentence with the pages its character range overlaps.
func splitSentences(text string, spans []pageSpan) []sentence {
	var out []sentence
	start := 0
	flush := func(end int) {
		fragment := strings.TrimSpace(text[start:end])
		if fragment != "" {
			out = append(out, sentence{
				text:  fragment,
				pages: pagesInRange(spans, start, end),
			})
		}
	}
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			flush(i)
			start = i + 1
		}
	}
	flush(len(text))
	return out
}

// pagesInRange returns every page whose span overlaps [start, end).
func pagesInRange(spans []pageSpan, start, end int) []int {
	if len(spans) == 0 {
		return nil
	}
	var pages []int
	for i, span := range spans {
		next := -1
		if i+1 < len(spans) {
			next = spans[i+1].start
		}
		// span covers [span.start, next); overlap test against [start, end)
		if span.start >= end {
			break
		}
		if next != -1 && next <= start {
			continue
		}
		pages = append(pages, span.page)
	}
	// text before the first marker belongs to no page; fall back to the
	// first marked page so the slice is never empty mid-document
	if len(pages) == 0 && len(spans) > 0 {
		pages = append(pages, spans[0].page)
	}
	return pages
}

func addPages(set map[int]struct{}, pages []int) {
	for _, p := range pages {
		set[p] = struct{}{}
	}
}

// sortedPages turns the page set into the stored list; [1] when nothing is known.
func sortedPages(set map[int]struct{}) []int {
	if len(set) == 0 {
		return []int{1}
	}
	pages := make([]int, 0, len(set))
	for p := range set {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
