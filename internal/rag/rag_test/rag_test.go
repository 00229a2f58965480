package rag_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/rag"
	"github.com/akolanti/docuquery/internal/rag/chunker"
	"github.com/akolanti/docuquery/internal/rag/extract"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/internal/rag/vectorstore"
)

func newTestService(docs *MockDocumentStore, index *MockIndex, mockLLM *MockLLM) rag.Service {
	return rag.NewService(
		docs,
		index,
		extract.NewExtractor(),
		chunker.New(wordMeasurer{}, 100, 10),
		mockLLM,
	)
}

func writeTestFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testContext() context.Context {
	return context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
}

func seedDocument(docs *MockDocumentStore, id string, path string, fileType string, status docModel.DocumentStatus) {
	docs.Docs[id] = docModel.Document{
		Id:       id,
		Title:    "Test Document",
		FileName: filepath.Base(path),
		FilePath: path,
		FileType: fileType,
		Status:   status,
	}
}

func TestIngestDocument_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		fileType       string
		setupMocks     func(index *MockIndex, docs *MockDocumentStore)
		expectedStatus docModel.DocumentStatus
		expectedKind   docModel.ErrorKind
	}{
		{
			name:           "Ingestion_Success",
			content:        "sentence one is here. sentence two is here. sentence three is here.",
			fileType:       "txt",
			setupMocks:     func(index *MockIndex, docs *MockDocumentStore) {},
			expectedStatus: docModel.StatusProcessed,
		},
		{
			name:     "Failure_Unsupported_Format",
			content:  "whatever",
			fileType: "exe",
			setupMocks: func(index *MockIndex, docs *MockDocumentStore) {
			},
			expectedStatus: docModel.StatusError,
			expectedKind:   docModel.KindUnsupportedFormat,
		},
		{
			name:           "Failure_Empty_Chunks",
			content:        "   \n\t  ",
			fileType:       "txt",
			setupMocks:     func(index *MockIndex, docs *MockDocumentStore) {},
			expectedStatus: docModel.StatusError,
			expectedKind:   docModel.KindEmptyChunkResult,
		},
		{
			name:     "Failure_Embedding",
			content:  "some real content to chunk.",
			fileType: "txt",
			setupMocks: func(index *MockIndex, docs *MockDocumentStore) {
				index.OnAdd = func(ctx context.Context, chunks []docModel.Chunk) ([]string, error) {
					return nil, docModel.WrapPipelineError(docModel.KindEmbeddingFailed, "provider down", errors.New("provider down"))
				}
			},
			expectedStatus: docModel.StatusError,
			expectedKind:   docModel.KindEmbeddingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := NewMockDocumentStore()
			index := &MockIndex{}
			tt.setupMocks(index, docs)

			path := writeTestFile(t, "test."+tt.fileType, tt.content)
			seedDocument(docs, "doc-1", path, tt.fileType, docModel.StatusProcessing)

			s := newTestService(docs, index, &MockLLM{})
			err := s.IngestDocument(testContext(), "doc-1")

			doc, _ := docs.GetDocument(testContext(), "doc-1")
			if doc.Status != tt.expectedStatus {
				t.Errorf("status got %s, want %s", doc.Status, tt.expectedStatus)
			}

			if tt.expectedKind != "" {
				if err == nil {
					t.Fatal("expected an error")
				}
				if docModel.KindOf(err) != tt.expectedKind {
					t.Errorf("kind got %v, want %v", docModel.KindOf(err), tt.expectedKind)
				}
				if doc.ErrorDetail == "" {
					t.Error("failed ingest must record the error detail on the document")
				}
			} else if err != nil {
				t.Fatalf("IngestDocument failed: %v", err)
			}
		})
	}
}

func TestIngestDocument_CommitsChunksWithKeys(t *testing.T) {
	docs := NewMockDocumentStore()
	index := &MockIndex{}

	path := writeTestFile(t, "test.txt", "first sentence here. second sentence here.")
	seedDocument(docs, "doc-1", path, "txt", docModel.StatusProcessing)

	s := newTestService(docs, index, &MockLLM{})
	if err := s.IngestDocument(testContext(), "doc-1"); err != nil {
		t.Fatalf("IngestDocument failed: %v", err)
	}

	chunks, _ := docs.GetChunks(testContext(), "doc-1")
	if len(chunks) == 0 {
		t.Fatal("no chunks committed")
	}
	for i, c := range chunks {
		if c.EmbeddingKey == "" {
			t.Errorf("chunk %d has no embedding key", i)
		}
	}
}

func TestIngestDocument_UploadingNotReady(t *testing.T) {
	docs := NewMockDocumentStore()
	path := writeTestFile(t, "test.txt", "content.")
	seedDocument(docs, "doc-1", path, "txt", docModel.StatusUploading)

	s := newTestService(docs, &MockIndex{}, &MockLLM{})
	if err := s.IngestDocument(testContext(), "doc-1"); !docModel.IsKind(err, docModel.KindNotReady) {
		t.Errorf("kind got %v, want NOT_READY", docModel.KindOf(err))
	}
}

func TestIngestDocument_NotFound(t *testing.T) {
	s := newTestService(NewMockDocumentStore(), &MockIndex{}, &MockLLM{})

	err := s.IngestDocument(testContext(), "ghost")
	if !docModel.IsKind(err, docModel.KindNotFound) {
		t.Errorf("kind got %v, want NOT_FOUND", docModel.KindOf(err))
	}
}

func TestIngestDocument_CommitFailureRollsBackVectors(t *testing.T) {
	docs := NewMockDocumentStore()
	docs.OnCommitProcessed = func(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
		return errors.New("redis down")
	}
	index := &MockIndex{}

	path := writeTestFile(t, "test.txt", "content that chunks fine.")
	seedDocument(docs, "doc-1", path, "txt", docModel.StatusProcessing)

	s := newTestService(docs, index, &MockLLM{})
	if err := s.IngestDocument(testContext(), "doc-1"); err == nil {
		t.Fatal("expected commit failure to surface")
	}
	if index.DeleteCalls != 1 {
		t.Errorf("index.Delete called %d times, want 1 rollback", index.DeleteCalls)
	}
	doc, _ := docs.GetDocument(testContext(), "doc-1")
	if doc.Status != docModel.StatusError {
		t.Errorf("status got %s, want error", doc.Status)
	}
}

func TestQuery_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		status         docModel.DocumentStatus
		setupMocks     func(index *MockIndex, mockLLM *MockLLM)
		expectedKind   docModel.ErrorKind
		expectedAnswer string
		wantSearch     int
	}{
		{
			name:   "Query_Success",
			status: docModel.StatusProcessed,
			setupMocks: func(index *MockIndex, mockLLM *MockLLM) {
				mockLLM.OnAnswer = func(ctx context.Context, q string, title string, p []llm.Passage) llm.GenerationResult {
					return llm.GenerationResult{Answer: "final answer", Confidence: 0.9}
				}
			},
			expectedAnswer: "final answer",
			wantSearch:     1,
		},
		{
			name:       "Failure_Not_Ready",
			status:     docModel.StatusProcessing,
			setupMocks: func(index *MockIndex, mockLLM *MockLLM) {},
			// a not-ready document must not cost a search or an embedding
			expectedKind: docModel.KindNotReady,
			wantSearch:   0,
		},
		{
			name:   "Failure_No_Relevant_Content",
			status: docModel.StatusProcessed,
			setupMocks: func(index *MockIndex, mockLLM *MockLLM) {
				index.OnSearch = func(ctx context.Context, q string, d string, k int) ([]vectorstore.Match, error) {
					return nil, nil
				}
			},
			expectedKind: docModel.KindNoRelevantContent,
			wantSearch:   1,
		},
		{
			name:   "Degraded_Generation_Is_Not_An_Error",
			status: docModel.StatusProcessed,
			setupMocks: func(index *MockIndex, mockLLM *MockLLM) {
				mockLLM.OnAnswer = func(ctx context.Context, q string, title string, p []llm.Passage) llm.GenerationResult {
					return llm.FallbackResult("model call failed")
				}
			},
			expectedAnswer: llm.FallbackAnswer,
			wantSearch:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs := NewMockDocumentStore()
			index := &MockIndex{}
			mockLLM := &MockLLM{}
			tt.setupMocks(index, mockLLM)

			seedDocument(docs, "doc-1", "unused", "txt", tt.status)

			s := newTestService(docs, index, mockLLM)
			result, err := s.Query(testContext(), "doc-1", "what is this?", 3)

			if index.SearchCalls != tt.wantSearch {
				t.Errorf("Search called %d times, want %d", index.SearchCalls, tt.wantSearch)
			}

			if tt.expectedKind != "" {
				if docModel.KindOf(err) != tt.expectedKind {
					t.Errorf("kind got %v, want %v", docModel.KindOf(err), tt.expectedKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if result.Answer != tt.expectedAnswer {
				t.Errorf("answer got %q, want %q", result.Answer, tt.expectedAnswer)
			}
			if tt.name == "Degraded_Generation_Is_Not_An_Error" {
				if result.Confidence != 0 {
					t.Errorf("degraded confidence got %f, want 0", result.Confidence)
				}
				if len(result.Sources) != 0 {
					t.Errorf("degraded answer must not cite sources, got %d", len(result.Sources))
				}
			}
		})
	}
}

func TestQuery_NotFound(t *testing.T) {
	index := &MockIndex{}
	s := newTestService(NewMockDocumentStore(), index, &MockLLM{})

	_, err := s.Query(testContext(), "ghost", "question?", 3)
	if !docModel.IsKind(err, docModel.KindNotFound) {
		t.Errorf("kind got %v, want NOT_FOUND", docModel.KindOf(err))
	}
	if index.SearchCalls != 0 {
		t.Error("unknown document must not trigger a search")
	}
}

func TestQuery_SourceFormatting(t *testing.T) {
	docs := NewMockDocumentStore()
	longText := strings.Repeat("x", 300)
	index := &MockIndex{
		OnSearch: func(ctx context.Context, q string, d string, k int) ([]vectorstore.Match, error) {
			return []vectorstore.Match{{
				DocumentId:  d,
				ChunkIndex:  4,
				Text:        longText,
				PageNumbers: []int{2, 3},
				Similarity:  0.87654,
				TokenCount:  77,
			}}, nil
		},
	}
	seedDocument(docs, "doc-1", "unused", "txt", docModel.StatusProcessed)

	s := newTestService(docs, index, &MockLLM{})
	result, err := s.Query(testContext(), "doc-1", "question?", 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	if len(result.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(result.Sources))
	}
	src := result.Sources[0]
	if len(src.TextPreview) != 203 || !strings.HasSuffix(src.TextPreview, "...") {
		t.Errorf("preview must be 200 chars plus ellipsis, got %d chars", len(src.TextPreview))
	}
	if src.Similarity != 0.877 {
		t.Errorf("similarity got %v, want 0.877 rounded to 3 decimals", src.Similarity)
	}
	if src.ChunkIndex != 4 || src.TokenCount != 77 {
		t.Errorf("source fields lost: %+v", src)
	}
	if result.ChunksUsed != 1 {
		t.Errorf("ChunksUsed got %d, want 1", result.ChunksUsed)
	}
}

func TestQuery_SourcePreviewKeepsRunesWhole(t *testing.T) {
	docs := NewMockDocumentStore()
	// three bytes per rune, the truncation point lands mid-rune
	longText := strings.Repeat("€", 100)
	index := &MockIndex{
		OnSearch: func(ctx context.Context, q string, d string, k int) ([]vectorstore.Match, error) {
			return []vectorstore.Match{{DocumentId: d, Text: longText, Similarity: 0.9}}, nil
		},
	}
	seedDocument(docs, "doc-1", "unused", "txt", docModel.StatusProcessed)

	s := newTestService(docs, index, &MockLLM{})
	result, err := s.Query(testContext(), "doc-1", "question?", 1)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}

	preview := result.Sources[0].TextPreview
	if !utf8.ValidString(preview) {
		t.Errorf("preview split a rune: %q", preview)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("truncated preview must end with an ellipsis, got %q", preview)
	}
	if strings.ContainsRune(preview, utf8.RuneError) {
		t.Errorf("replacement character leaked into %q", preview)
	}
}

func TestDeleteDocument(t *testing.T) {
	docs := NewMockDocumentStore()
	index := &MockIndex{}

	path := writeTestFile(t, "test.txt", "content.")
	seedDocument(docs, "doc-1", path, "txt", docModel.StatusProcessed)

	s := newTestService(docs, index, &MockLLM{})
	if err := s.DeleteDocument(testContext(), "doc-1"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, found := docs.GetDocument(testContext(), "doc-1"); found {
		t.Error("document record still present after delete")
	}
	if index.DeleteCalls != 1 {
		t.Errorf("index.Delete called %d times, want 1", index.DeleteCalls)
	}

	if err := s.DeleteDocument(testContext(), "doc-1"); !docModel.IsKind(err, docModel.KindNotFound) {
		t.Errorf("second delete kind got %v, want NOT_FOUND", docModel.KindOf(err))
	}
}
