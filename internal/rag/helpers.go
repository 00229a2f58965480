package rag

import (
	"context"
	"math"
	"os"
	"time"
	"unicode/utf8"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/metrics"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/internal/rag/vectorstore"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

func traceId(ctx context.Context) string {
	if v, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return v
	}
	return ""
}

// markError moves the document to status error with the failure detail and
// returns the original pipeline error for the caller.
func (s *service) markError(ctx context.Context, doc docModel.Document, cause error) error {
	s.logger.Error("ingest failed", "documentId", doc.Id, "error", cause)

	doc.Status = docModel.StatusError
	doc.ErrorDetail = cause.Error()
	doc.UpdatedAt = time.Now().UTC()
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		s.logger.Error("failed recording error status", "documentId", doc.Id, "error", err)
	}
	return cause
}

func (s *service) executeExtractionStep(ctx context.Context, log *logger_i.Logger, doc *docModel.Document) (string, int, error) {
	log.Debug("IngestDocument", "step", "extraction")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	data, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return "", 0, docModel.WrapPipelineError(docModel.KindExtractionFailed,
			"failed reading stored file", err)
	}
	return s.extractor.Extract(data, doc.FileType)
}

func (s *service) executeChunkingStep(log *logger_i.Logger, text string, documentId string) []docModel.Chunk {
	log.Debug("IngestDocument", "step", "chunking")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	return s.chunker.Chunk(text, documentId)
}

func (s *service) executeIndexingStep(ctx context.Context, log *logger_i.Logger, chunks []docModel.Chunk) ([]string, error) {
	log.Debug("IngestDocument", "step", "embedding", "chunks", len(chunks))

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.index.Add(ctx, chunks)
}

func (s *service) executeSearchStep(ctx context.Context, log *logger_i.Logger, question string, documentId string, k int) ([]vectorstore.Match, error) {
	log.Debug("Query", "step", "vector_search", "k", k)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	return s.index.Search(ctx, question, documentId, k)
}

func (s *service) executeGenerationStep(ctx context.Context, log *logger_i.Logger, question string, title string, matches []vectorstore.Match) llm.GenerationResult {
	log.Debug("Query", "step", "llm_generation")

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	passages := make([]llm.Passage, len(matches))
	for i, m := range matches {
		passages[i] = llm.Passage{
			ChunkIndex:  m.ChunkIndex,
			Text:        m.Text,
			PageNumbers: m.PageNumbers,
			Similarity:  m.Similarity,
			TokenCount:  m.TokenCount,
		}
	}
	return s.llmProvider.Answer(ctx, question, title, passages)
}

// buildSources trims each match to a 200 character preview and rounds
// similarity to 3 decimals for the response payload.
func buildSources(matches []vectorstore.Match) []Source {
	sources := make([]Source, len(matches))
	for i, m := range matches {
		preview := m.Text
		if len(preview) > config.SourcePreviewLength {
			cut := config.SourcePreviewLength
			// back off so the cut never lands inside a multi-byte rune
			for cut > 0 && !utf8.RuneStart(preview[cut]) {
				cut--
			}
			preview = preview[:cut] + "..."
		}
		sources[i] = Source{
			ChunkIndex:  m.ChunkIndex,
			PageNumbers: m.PageNumbers,
			TextPreview: preview,
			Similarity:  math.Round(m.Similarity*1000) / 1000,
			TokenCount:  m.TokenCount,
		}
	}
	return sources
}
