package adapter

import (
	"net/http"

	"github.com/akolanti/docuquery/internal/api"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/rag"
)

func ToDocumentResponse(doc docModel.Document) api.DocumentResponse {
	return api.DocumentResponse{
		Id:          doc.Id,
		Title:       doc.Title,
		FileName:    doc.FileName,
		FileType:    doc.FileType,
		FileSize:    doc.FileSize,
		PageCount:   doc.PageCount,
		Status:      string(doc.Status),
		ErrorDetail: doc.ErrorDetail,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func ToListResponse(docs []docModel.Document) api.ListDocumentsResponse {
	out := make([]api.DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = ToDocumentResponse(doc)
	}
	return api.ListDocumentsResponse{Success: true, Documents: out, Count: len(out)}
}

func ToDetailResponse(doc docModel.Document, chunks []docModel.Chunk) api.DocumentDetailResponse {
	chunkResponses := make([]api.ChunkResponse, len(chunks))
	for i, c := range chunks {
		chunkResponses[i] = api.ChunkResponse{
			ChunkIndex:  c.ChunkIndex,
			Text:        c.Text,
			PageNumbers: c.PageNumbers,
			TokenCount:  c.TokenCount,
		}
	}
	return api.DocumentDetailResponse{
		Success:  true,
		Document: ToDocumentResponse(doc),
		Chunks:   chunkResponses,
	}
}

func ToQueryResponse(result rag.QueryResult) api.QueryResponse {
	sources := make([]api.SourceResponse, len(result.Sources))
	for i, s := range result.Sources {
		sources[i] = api.SourceResponse{
			ChunkIndex:  s.ChunkIndex,
			PageNumbers: s.PageNumbers,
			TextPreview: s.TextPreview,
			Similarity:  s.Similarity,
			TokenCount:  s.TokenCount,
		}
	}
	return api.QueryResponse{
		Success:        true,
		Answer:         result.Answer,
		Confidence:     result.Confidence,
		Reasoning:      result.Reasoning,
		Sources:        sources,
		DocumentTitle:  result.DocumentTitle,
		ChunksUsed:     result.ChunksUsed,
		ProcessingTime: result.ProcessingTime,
	}
}

func BadRequest(documentId string, errorMessage string, details string) api.ErrorResponse {
	return api.ErrorResponse{
		Success:    false,
		Error:      errorMessage,
		Details:    details,
		DocumentId: documentId,
	}
}

// StatusForError maps pipeline error kinds to HTTP status codes.
func StatusForError(err error) int {
	switch docModel.KindOf(err) {
	case docModel.KindNotFound, docModel.KindNoRelevantContent:
		return http.StatusNotFound
	case docModel.KindNotReady, docModel.KindUnsupportedFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
