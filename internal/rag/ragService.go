package rag

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/metrics"
	"github.com/akolanti/docuquery/internal/rag/chunker"
	"github.com/akolanti/docuquery/internal/rag/extract"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/internal/rag/vectorstore"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - This is the PUBLIC contract the handlers program against.
  - It defines the "behavior" (ingest, query, delete).

2. service (Private Struct):
  - This is the PRIVATE implementation.
  - It holds the "state" (record store, vector index, model clients).
  - It is lowercase to prevent external packages from reaching the
    internal dependencies directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.

4. Dependency Injection (NewService):
  - The constructor links the private struct to the public interface,
    so tests can swap real stores and model clients for mocks.
*/

// Source is the caller-facing provenance record for one retrieved chunk.
type Source struct {
	ChunkIndex  int     `json:"chunk_index"`
	PageNumbers []int   `json:"page_numbers"`
	TextPreview string  `json:"text_preview"`
	Similarity  float64 `json:"similarity"`
	TokenCount  int     `json:"token_count"`
}

// QueryResult always carries an answer. A degraded generation shows up as the
// fallback text with confidence 0, never as an error.
type QueryResult struct {
	Answer         string
	Confidence     float64
	Reasoning      string
	Sources        []Source
	DocumentTitle  string
	ChunksUsed     int
	ProcessingTime float64
}

// Service is the full document pipeline the handlers call into.
type Service interface {
	IngestDocument(ctx context.Context, documentId string) error
	Query(ctx context.Context, documentId string, question string, numChunks int) (QueryResult, error)
	DeleteDocument(ctx context.Context, documentId string) error
}

type service struct {
	docs        docModel.DocumentStore
	index       vectorstore.Index
	extractor   extract.Extractor
	chunker     *chunker.Chunker
	llmProvider llm.Provider
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(docs docModel.DocumentStore, index vectorstore.Index, extractor extract.Extractor, ch *chunker.Chunker, llmProvider llm.Provider) Service {
	return &service{
		docs:        docs,
		index:       index,
		extractor:   extractor,
		chunker:     ch,
		llmProvider: llmProvider,
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

// IngestDocument runs extraction, chunking, embedding and the atomic commit
// for an uploaded document. Every pipeline failure lands the document in
// status error with the failure detail recorded on it.
func (s *service) IngestDocument(ctx context.Context, documentId string) error {
	inMethodLogger := s.logger.With("traceId", traceId(ctx), "documentId", documentId)

	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("document_ingestion", time.Since(start)) }()

	doc, found := s.docs.GetDocument(ctx, documentId)
	if !found {
		return docModel.NewPipelineError(docModel.KindNotFound,
			fmt.Sprintf("document %s not found", documentId))
	}
	if doc.Status == docModel.StatusProcessed {
		inMethodLogger.Info("document already processed, skipping ingest")
		return nil
	}
	if doc.Status == docModel.StatusUploading {
		return docModel.NewPipelineError(docModel.KindNotReady,
			"document upload has not finished")
	}

	text, pageCount, err := s.executeExtractionStep(ctx, inMethodLogger, &doc)
	if err != nil {
		metrics.CountIngestOutcome("error")
		return s.markError(ctx, doc, err)
	}

	doc.PageCount = pageCount
	doc.UpdatedAt = time.Now().UTC()
	if err := s.docs.SaveDocument(ctx, doc); err != nil {
		metrics.CountIngestOutcome("error")
		return s.markError(ctx, doc, err)
	}

	chunks := s.executeChunkingStep(inMethodLogger, text, documentId)
	if len(chunks) == 0 {
		metrics.CountIngestOutcome("error")
		return s.markError(ctx, doc, docModel.NewPipelineError(
			docModel.KindEmptyChunkResult, "no chunks generated from document text"))
	}

	keys, err := s.executeIndexingStep(ctx, inMethodLogger, chunks)
	if err != nil {
		metrics.CountIngestOutcome("error")
		return s.markError(ctx, doc, err)
	}
	for i := range chunks {
		chunks[i].EmbeddingKey = keys[i]
	}

	doc.Status = docModel.StatusProcessed
	doc.ErrorDetail = ""
	doc.UpdatedAt = time.Now().UTC()
	if err := s.docs.CommitProcessed(ctx, doc, chunks); err != nil {
		// vectors are already durable, roll them back so the store and the
		// index cannot disagree about this document
		if _, delErr := s.index.Delete(ctx, documentId); delErr != nil {
			inMethodLogger.Error("rollback of vectors failed", "error", delErr)
		}
		metrics.CountIngestOutcome("error")
		return s.markError(ctx, doc, err)
	}

	metrics.CountIngestOutcome("processed")
	metrics.SetVectorStoreRecords(s.index.Stats().TotalRecords)
	inMethodLogger.Info("document ingested", "chunks", len(chunks), "pages", pageCount)
	return nil
}

// Query retrieves the best matching chunks for the question and asks the
// model to answer from them. Retrieval errors surface; generation never does.
func (s *service) Query(ctx context.Context, documentId string, question string, numChunks int) (QueryResult, error) {
	inMethodLogger := s.logger.With("traceId", traceId(ctx), "documentId", documentId)

	start := time.Now()
	defer func() { metrics.CapturePipelineMetrics("document_query", time.Since(start)) }()

	doc, found := s.docs.GetDocument(ctx, documentId)
	if !found {
		return QueryResult{}, docModel.NewPipelineError(docModel.KindNotFound,
			fmt.Sprintf("document %s not found", documentId))
	}
	// status guard comes before any embedding call, a not-ready document
	// must not cost a model roundtrip
	if doc.Status != docModel.StatusProcessed {
		return QueryResult{}, docModel.NewPipelineError(docModel.KindNotReady,
			fmt.Sprintf("document is not ready for querying (status: %s)", doc.Status))
	}

	if numChunks <= 0 {
		numChunks = config.DefaultSearchResults
	}
	if numChunks > config.MaxSearchResults {
		numChunks = config.MaxSearchResults
	}

	matches, err := s.executeSearchStep(ctx, inMethodLogger, question, documentId, numChunks)
	if err != nil {
		return QueryResult{}, err
	}
	if len(matches) == 0 {
		return QueryResult{}, docModel.NewPipelineError(docModel.KindNoRelevantContent,
			"no relevant content found for this question")
	}

	generated := s.executeGenerationStep(ctx, inMethodLogger, question, doc.Title, matches)

	// a degraded generation ships the fallback answer with no sources,
	// there is nothing trustworthy to cite
	sources := buildSources(matches)
	if generated.Degraded {
		sources = nil
	}

	result := QueryResult{
		Answer:         generated.Answer,
		Confidence:     generated.Confidence,
		Reasoning:      generated.Reasoning,
		Sources:        sources,
		DocumentTitle:  doc.Title,
		ChunksUsed:     len(matches),
		ProcessingTime: math.Round(time.Since(start).Seconds()*100) / 100,
	}
	return result, nil
}

// DeleteDocument removes the record, the chunks, the vectors and the stored file.
func (s *service) DeleteDocument(ctx context.Context, documentId string) error {
	inMethodLogger := s.logger.With("traceId", traceId(ctx), "documentId", documentId)

	doc, found := s.docs.GetDocument(ctx, documentId)
	if !found {
		return docModel.NewPipelineError(docModel.KindNotFound,
			fmt.Sprintf("document %s not found", documentId))
	}

	removed, err := s.index.Delete(ctx, documentId)
	if err != nil {
		return err
	}
	if err := s.docs.DeleteDocument(ctx, documentId); err != nil {
		return err
	}
	if doc.FilePath != "" {
		if err := os.RemoveAll(doc.FilePath); err != nil {
			inMethodLogger.Error("failed removing stored file", "path", doc.FilePath, "error", err)
		}
	}

	metrics.SetVectorStoreRecords(s.index.Stats().TotalRecords)
	inMethodLogger.Info("document deleted", "vectorsRemoved", removed)
	return nil
}
