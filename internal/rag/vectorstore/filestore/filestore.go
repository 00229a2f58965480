package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/rag/embedding"
	"github.com/akolanti/docuquery/internal/rag/vectorstore"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

// record is the on-disk shape of one embedded chunk.
type record struct {
	Embedding   []float32 `json:"embedding"`
	Text        string    `json:"text"`
	DocumentId  string    `json:"document_id"`
	ChunkIndex  int       `json:"chunk_index"`
	PageNumbers []int     `json:"page_numbers"`
	TokenCount  int       `json:"token_count"`
}

// Store is the file-backed exact-cosine index. The whole corpus lives in
// memory behind a RWMutex and every mutation is flushed to the JSON file
// before the caller sees success, so a restart loses nothing.
type Store struct {
	mu       sync.RWMutex
	path     string
	records  map[string]record
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

// New loads the index from path. A missing file is an empty index; an
// unreadable or corrupt one is an error so we never silently drop vectors.
func New(path string, embedder embedding.Embedder) (*Store, error) {
	s := &Store{
		path:     path,
		records:  map[string]record{},
		embedder: embedder,
		logger:   logger_i.NewLogger("VectorStore"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("no existing vector store file, starting empty", "path", path)
			return s, nil
		}
		return nil, fmt.Errorf("failed reading vector store file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("vector store file %s is corrupt: %w", path, err)
	}
	s.logger.Info("loaded vector store", "path", path, "records", len(s.records))
	return s, nil
}

func recordKey(documentId string, chunkIndex int) string {
	return fmt.Sprintf("doc_%s_chunk_%d", documentId, chunkIndex)
}

// Add embeds the chunks in batches and commits them in one shot. If any batch
// fails nothing is stored. Re-adding the same document overwrites its keys,
// so retries are idempotent.
func (s *Store) Add(ctx context.Context, chunks []docModel.Chunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	staged := make(map[string]record, len(chunks))
	keys := make([]string, 0, len(chunks))

	for start := 0; start < len(chunks); start += config.EmbeddingBatchSize {
		end := min(start+config.EmbeddingBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		vectors, err := s.embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			s.logger.Error("batch embedding failed", "batchStart", start, "error", err)
			return nil, docModel.WrapPipelineError(docModel.KindEmbeddingFailed,
				fmt.Sprintf("embedding batch starting at chunk %d failed: %v", start, err), err)
		}
		if len(vectors) != len(batch) {
			return nil, docModel.NewPipelineError(docModel.KindEmbeddingFailed,
				fmt.Sprintf("embedder returned %d vectors for %d chunks", len(vectors), len(batch)))
		}

		for i, chunk := range batch {
			key := recordKey(chunk.DocumentId, chunk.ChunkIndex)
			staged[key] = record{
				Embedding:   vectors[i],
				Text:        chunk.Text,
				DocumentId:  chunk.DocumentId,
				ChunkIndex:  chunk.ChunkIndex,
				PageNumbers: chunk.PageNumbers,
				TokenCount:  chunk.TokenCount,
			}
			keys = append(keys, key)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]record, len(s.records)+len(staged))
	for k, v := range s.records {
		next[k] = v
	}
	for k, v := range staged {
		next[k] = v
	}
	if err := s.flush(next); err != nil {
		return nil, err
	}
	s.records = next

	s.logger.Info("added records to vector store", "count", len(staged))
	return keys, nil
}

// Search embeds the query and ranks every stored record for the document by
// cosine similarity, highest first, ties broken by chunk index.
func (s *Store) Search(ctx context.Context, query string, documentId string, k int) ([]vectorstore.Match, error) {
	queryVector, err := s.embedder.GetEmbedding(ctx, query)
	if err != nil {
		s.logger.Error("query embedding failed", "error", err)
		return nil, docModel.WrapPipelineError(docModel.KindEmbeddingFailed,
			fmt.Sprintf("failed to embed query: %v", err), err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []vectorstore.Match
	for key, rec := range s.records {
		if rec.DocumentId != documentId {
			continue
		}
		matches = append(matches, vectorstore.Match{
			Key:         key,
			DocumentId:  rec.DocumentId,
			ChunkIndex:  rec.ChunkIndex,
			Text:        rec.Text,
			PageNumbers: rec.PageNumbers,
			TokenCount:  rec.TokenCount,
			Similarity:  cosineSimilarity(queryVector, rec.Embedding),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].ChunkIndex < matches[j].ChunkIndex
	})

	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// Delete removes every record for the document. Deleting an unknown document
// is fine and reports zero.
func (s *Store) Delete(ctx context.Context, documentId string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]record, len(s.records))
	removed := 0
	for k, v := range s.records {
		if v.DocumentId == documentId {
			removed++
			continue
		}
		next[k] = v
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.flush(next); err != nil {
		return 0, err
	}
	s.records = next

	s.logger.Info("deleted document vectors", "documentId", documentId, "removed", removed)
	return removed, nil
}

func (s *Store) Stats() vectorstore.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := map[string]struct{}{}
	for _, rec := range s.records {
		docs[rec.DocumentId] = struct{}{}
	}
	return vectorstore.Stats{
		TotalRecords:      len(s.records),
		DistinctDocuments: len(docs),
	}
}

// Reset wipes the whole index. Destructive, so it logs loudly.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Warn("resetting vector store, all records will be lost", "records", len(s.records))
	empty := map[string]record{}
	if err := s.flush(empty); err != nil {
		return err
	}
	s.records = empty
	return nil
}

// flush writes the record set to a temp file and renames it over the store
// path, so a crash mid-write never leaves a half-written file behind.
func (s *Store) flush(records map[string]record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed marshaling vector store: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".vectorstore-*.json")
	if err != nil {
		return fmt.Errorf("failed creating temp store file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed writing vector store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed closing vector store file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed replacing vector store file: %w", err)
	}
	return nil
}

// cosineSimilarity computes in float64 for stable ordering. A zero-magnitude
// vector on either side scores 0 rather than dividing by zero.
func cosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		magA += x * x
		magB += y * y
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
