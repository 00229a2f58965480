package rag_test

import (
	"context"
	"strings"
	"sync"

	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/internal/rag/vectorstore"
)

// MockDocumentStore implements docModel.DocumentStore over maps, with
// control fields to simulate failures.
type MockDocumentStore struct {
	mu     sync.Mutex
	Docs   map[string]docModel.Document
	Chunks map[string][]docModel.Chunk

	OnSaveDocument    func(ctx context.Context, doc docModel.Document) error
	OnCommitProcessed func(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error
}

func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		Docs:   map[string]docModel.Document{},
		Chunks: map[string][]docModel.Chunk{},
	}
}

func (m *MockDocumentStore) SaveDocument(ctx context.Context, doc docModel.Document) error {
	if m.OnSaveDocument != nil {
		if err := m.OnSaveDocument(ctx, doc); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Docs[doc.Id] = doc
	return nil
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, found := m.Docs[id]
	return doc, found
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context) ([]docModel.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]docModel.Document, 0, len(m.Docs))
	for _, doc := range m.Docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Docs, id)
	delete(m.Chunks, id)
	return nil
}

func (m *MockDocumentStore) GetChunks(ctx context.Context, documentId string) ([]docModel.Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Chunks[documentId], nil
}

func (m *MockDocumentStore) CommitProcessed(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	if m.OnCommitProcessed != nil {
		if err := m.OnCommitProcessed(ctx, doc, chunks); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Docs[doc.Id] = doc
	m.Chunks[doc.Id] = chunks
	return nil
}

// MockIndex implements vectorstore.Index
type MockIndex struct {
	OnAdd    func(ctx context.Context, chunks []docModel.Chunk) ([]string, error)
	OnSearch func(ctx context.Context, query string, documentId string, k int) ([]vectorstore.Match, error)
	OnDelete func(ctx context.Context, documentId string) (int, error)

	SearchCalls int
	DeleteCalls int
	Records     int
}

func (m *MockIndex) Add(ctx context.Context, chunks []docModel.Chunk) ([]string, error) {
	if m.OnAdd != nil {
		return m.OnAdd(ctx, chunks)
	}
	keys := make([]string, len(chunks))
	for i, c := range chunks {
		keys[i] = "doc_" + c.DocumentId + "_chunk_" + string(rune('0'+c.ChunkIndex))
	}
	m.Records += len(chunks)
	return keys, nil
}

func (m *MockIndex) Search(ctx context.Context, query string, documentId string, k int) ([]vectorstore.Match, error) {
	m.SearchCalls++
	if m.OnSearch != nil {
		return m.OnSearch(ctx, query, documentId, k)
	}
	return []vectorstore.Match{{
		DocumentId: documentId,
		ChunkIndex: 0,
		Text:       "default match text",
		Similarity: 0.9,
	}}, nil
}

func (m *MockIndex) Delete(ctx context.Context, documentId string) (int, error) {
	m.DeleteCalls++
	if m.OnDelete != nil {
		return m.OnDelete(ctx, documentId)
	}
	return 0, nil
}

func (m *MockIndex) Stats() vectorstore.Stats {
	return vectorstore.Stats{TotalRecords: m.Records}
}

func (m *MockIndex) Reset() error {
	m.Records = 0
	return nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnAnswer func(ctx context.Context, question string, title string, passages []llm.Passage) llm.GenerationResult
}

func (m *MockLLM) Answer(ctx context.Context, question string, title string, passages []llm.Passage) llm.GenerationResult {
	if m.OnAnswer != nil {
		return m.OnAnswer(ctx, question, title, passages)
	}
	return llm.GenerationResult{Answer: "mocked llm response", Confidence: 0.8, Reasoning: "mocked"}
}

// wordMeasurer keeps chunk sizing deterministic without a real encoder.
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
