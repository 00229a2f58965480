package api

import "time"

type DocumentResponse struct {
	Id          string    `json:"id" example:"9f1c2d34-ab56-4e78-9012-3456789abcde"`
	Title       string    `json:"title" example:"Quarterly Report"`
	FileName    string    `json:"file_name" example:"report.pdf"`
	FileType    string    `json:"file_type" example:"pdf"`
	FileSize    int64     `json:"file_size" example:"204800"`
	PageCount   int       `json:"page_count" example:"12"`
	Status      string    `json:"status" example:"processed"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UploadResponse struct {
	Success  bool             `json:"success" example:"true"`
	Message  string           `json:"message" example:"Document uploaded and processed successfully"`
	Document DocumentResponse `json:"document"`
}

type ListDocumentsResponse struct {
	Success   bool               `json:"success" example:"true"`
	Documents []DocumentResponse `json:"documents"`
	Count     int                `json:"count" example:"2"`
}

type ChunkResponse struct {
	ChunkIndex  int    `json:"chunk_index" example:"0"`
	Text        string `json:"text"`
	PageNumbers []int  `json:"page_numbers"`
	TokenCount  int    `json:"token_count" example:"483"`
}

type DocumentDetailResponse struct {
	Success  bool             `json:"success" example:"true"`
	Document DocumentResponse `json:"document"`
	Chunks   []ChunkResponse  `json:"chunks"`
}

type SourceResponse struct {
	ChunkIndex  int     `json:"chunk_index" example:"3"`
	PageNumbers []int   `json:"page_numbers"`
	TextPreview string  `json:"text_preview"`
	Similarity  float64 `json:"similarity" example:"0.872"`
	TokenCount  int     `json:"token_count" example:"497"`
}

type QueryResponse struct {
	Success        bool             `json:"success" example:"true"`
	Answer         string           `json:"answer"`
	Confidence     float64          `json:"confidence" example:"0.85"`
	Reasoning      string           `json:"reasoning,omitempty"`
	Sources        []SourceResponse `json:"sources"`
	DocumentTitle  string           `json:"document_title"`
	ChunksUsed     int              `json:"chunks_used" example:"3"`
	ProcessingTime float64          `json:"processing_time" example:"1.42"`
}

type StatsResponse struct {
	Success           bool `json:"success" example:"true"`
	TotalRecords      int  `json:"total_records" example:"120"`
	DistinctDocuments int  `json:"distinct_documents" example:"4"`
	StoredDocuments   int  `json:"stored_documents" example:"5"`
}

type ErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	Error      string `json:"error" example:"Document not found"`
	Details    string `json:"details,omitempty"`
	DocumentId string `json:"document_id,omitempty"`
}

// requests---------------------

type QueryRequest struct {
	DocumentId string `json:"document_id" validate:"required"`
	Question   string `json:"question" validate:"required"`
	NumChunks  int    `json:"num_chunks,omitempty"`
}
