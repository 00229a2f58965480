package store

import (
	"context"
	"sync"

	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem DocumentStore")

// InMemoryDocumentStore is the fallback when Redis is unavailable. Same
// contract, nothing survives a restart.
type InMemoryDocumentStore struct {
	mu     *sync.RWMutex
	docs   map[string]docModel.Document
	chunks map[string][]docModel.Chunk
}

func InitInMemoryDocumentStore() *InMemoryDocumentStore {
	return &InMemoryDocumentStore{
		mu:     new(sync.RWMutex),
		docs:   make(map[string]docModel.Document),
		chunks: make(map[string][]docModel.Chunk),
	}
}

func (store *InMemoryDocumentStore) SaveDocument(ctx context.Context, doc docModel.Document) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.docs[doc.Id] = doc
	inMemLogger.Info(doc.Id, " : Saved document to store")
	return nil
}

func (store *InMemoryDocumentStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	result, found := store.docs[id]
	return result, found
}

func (store *InMemoryDocumentStore) ListDocuments(ctx context.Context) ([]docModel.Document, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	docs := make([]docModel.Document, 0, len(store.docs))
	for _, doc := range store.docs {
		docs = append(docs, doc)
	}
	return docs, nil
}

func (store *InMemoryDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.docs, id)
	delete(store.chunks, id)
	return nil
}

func (store *InMemoryDocumentStore) GetChunks(ctx context.Context, documentId string) ([]docModel.Chunk, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.chunks[documentId], nil
}

func (store *InMemoryDocumentStore) CommitProcessed(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.docs[doc.Id] = doc
	store.chunks[doc.Id] = chunks
	return nil
}
