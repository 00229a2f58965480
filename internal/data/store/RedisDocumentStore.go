package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/data/redisStore"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

const documentIndexKey = "documents:index"

func documentKey(id string) string {
	return "doc:" + id
}

func chunksKey(id string) string {
	return "chunks:" + id
}

type RedisDocumentStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisDocumentStore(ctx context.Context) *RedisDocumentStore {
	underlying := redisStore.GetRedisStore(ctx, config.RedisDocumentStore)
	if underlying == nil {
		return nil
	}
	return &RedisDocumentStore{
		store:  underlying,
		logger: logger_i.NewLogger("DocumentStore"),
	}
}

func (s *RedisDocumentStore) SaveDocument(ctx context.Context, doc docModel.Document) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", doc.Id)
	log.Debug("saving document")

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, documentKey(doc.Id), data, config.RedisDocumentStoreTTL); err != nil {
		return err
	}
	if err := s.store.SetAdd(ctx, documentIndexKey, doc.Id); err != nil {
		return err
	}
	log.Debug("Saved document to Redis")
	return nil
}

func (s *RedisDocumentStore) GetDocument(ctx context.Context, id string) (docModel.Document, bool) {
	var doc docModel.Document
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", id)

	val, err := s.store.Get(ctx, documentKey(id))
	if s.store.IsNil(err) {
		return doc, false
	} else if err != nil {
		log.Error("Error reading document from Redis", "error", err)
		return doc, false
	}

	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		log.Error("Stored document is not valid JSON", "error", err)
		return doc, false
	}
	return doc, true
}

func (s *RedisDocumentStore) ListDocuments(ctx context.Context) ([]docModel.Document, error) {
	ids, err := s.store.SetMembers(ctx, documentIndexKey)
	if err != nil {
		return nil, err
	}

	docs := make([]docModel.Document, 0, len(ids))
	for _, id := range ids {
		doc, found := s.GetDocument(ctx, id)
		if !found {
			// index member without a record, drop the stale entry
			_ = s.store.SetRem(ctx, documentIndexKey, id)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *RedisDocumentStore) DeleteDocument(ctx context.Context, id string) error {
	if err := s.store.Del(ctx, documentKey(id), chunksKey(id)); err != nil {
		s.logger.Error("Error deleting document from Redis", "documentId", id, "error", err)
		return err
	}
	if err := s.store.SetRem(ctx, documentIndexKey, id); err != nil {
		return err
	}
	s.logger.Debug("Document deleted from Redis", "documentId", id)
	return nil
}

func (s *RedisDocumentStore) GetChunks(ctx context.Context, documentId string) ([]docModel.Chunk, error) {
	val, err := s.store.Get(ctx, chunksKey(documentId))
	if s.store.IsNil(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var chunks []docModel.Chunk
	if err := json.Unmarshal([]byte(val), &chunks); err != nil {
		return nil, fmt.Errorf("stored chunks for %s are corrupt: %w", documentId, err)
	}
	return chunks, nil
}

func (s *RedisDocumentStore) CommitProcessed(ctx context.Context, doc docModel.Document, chunks []docModel.Chunk) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", doc.Id)

	docData, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	chunkData, err := json.Marshal(chunks)
	if err != nil {
		return err
	}

	err = s.store.TxSet(ctx, map[string]interface{}{
		documentKey(doc.Id): docData,
		chunksKey(doc.Id):   chunkData,
	}, config.RedisDocumentStoreTTL)
	if err != nil {
		log.Error("Error committing processed document", "error", err)
		return err
	}
	if err := s.store.SetAdd(ctx, documentIndexKey, doc.Id); err != nil {
		return err
	}
	log.Debug("Committed processed document", "chunks", len(chunks))
	return nil
}

func TestDocumentStore(store *redisStore.Store) *RedisDocumentStore {
	return &RedisDocumentStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
