package vectorstore

import (
	"context"

	"github.com/akolanti/docuquery/internal/domain/docModel"
)

// Match is one retrieved chunk with its similarity against the query.
type Match struct {
	Key         string
	DocumentId  string
	ChunkIndex  int
	Text        string
	PageNumbers []int
	TokenCount  int
	Similarity  float64
}

type Stats struct {
	TotalRecords      int `json:"total_records"`
	DistinctDocuments int `json:"distinct_documents"`
}

type Index interface {
	// Add embeds and stores the chunks, all or nothing. Returns the record
	// keys in chunk order.
	Add(ctx context.Context, chunks []docModel.Chunk) ([]string, error)
	Search(ctx context.Context, query string, documentId string, k int) ([]Match, error)
	Delete(ctx context.Context, documentId string) (int, error)
	Stats() Stats
	Reset() error
}
