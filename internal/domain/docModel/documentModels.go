package docModel

import (
	"context"
	"time"
)

type DocumentStatus string

const (
	StatusUploading  DocumentStatus = "uploading"
	StatusProcessing DocumentStatus = "processing"
	StatusProcessed  DocumentStatus = "processed"
	StatusError      DocumentStatus = "error"
)

// Document is the record-store view of an uploaded file.
// Status only ever moves uploading -> processing -> processed|error.
type Document struct {
	Id          string         `json:"id"`
	Title       string         `json:"title"`
	FileName    string         `json:"file_name"`
	FilePath    string         `json:"file_path"`
	FileType    string         `json:"file_type"`
	FileSize    int64          `json:"file_size"`
	PageCount   int            `json:"page_count"`
	Status      DocumentStatus `json:"status"`
	ErrorDetail string         `json:"error_detail,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Chunk is immutable once written - it only disappears when its document does.
type Chunk struct {
	DocumentId   string `json:"document_id"`
	ChunkIndex   int    `json:"chunk_index"`
	Text         string `json:"text"`
	PageNumbers  []int  `json:"page_numbers"`
	TokenCount   int    `json:"token_count"`
	EmbeddingKey string `json:"embedding_key,omitempty"`
}

type DocumentStore interface {
	SaveDocument(ctx context.Context, doc Document) error
	GetDocument(ctx context.Context, id string) (Document, bool)
	ListDocuments(ctx context.Context) ([]Document, error)

	// DeleteDocument removes the document and cascades to its chunks
	DeleteDocument(ctx context.Context, id string) error

	GetChunks(ctx context.Context, documentId string) ([]Chunk, error)

	// CommitProcessed writes the chunk batch and the processed status flip
	// as one transaction - either both land or neither does
	CommitProcessed(ctx context.Context, doc Document, chunks []Chunk) error
}
