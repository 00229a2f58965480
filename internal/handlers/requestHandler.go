package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/docuquery/internal/adapter"
	"github.com/akolanti/docuquery/internal/adapter/utils"
	"github.com/akolanti/docuquery/internal/api"
	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/domain/docModel"
)

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// UploadDocumentHandler godoc
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data, stores it and runs the full ingest pipeline before responding.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        title     formData  string  false  "Display title, defaults to the file name"
// @Param        document  formData  file    true   "The txt, md, pdf or docx file to upload"
// @Success      201  {object}  api.UploadResponse  "Document stored and processed"
// @Failure      400  {object}  api.ErrorResponse   "Unsupported format or bad request"
// @Failure      500  {object}  api.ErrorResponse   "Pipeline failure, document is in status error"
// @Router       /api/documents/upload [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	if handlerInstance == nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Service not ready")
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	fileType := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileMetadata.Filename), "."))
	if !isSupportedExtension(fileType) {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Unsupported file type: "+fileType)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = strings.TrimSuffix(fileMetadata.Filename, filepath.Ext(fileMetadata.Filename))
	}

	documentId := utils.GetNewUUID()
	targetDir, errString := getTargetDirectory(documentId)
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	storedPath := filepath.Join(targetDir, fileMetadata.Filename)
	destinationFileWriter, err := os.Create(storedPath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	written, err := io.Copy(destinationFileWriter, fileReader)
	destinationFileWriter.Close()
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Write error")
		return
	}

	now := time.Now().UTC()
	doc := docModel.Document{
		Id:        documentId,
		Title:     title,
		FileName:  fileMetadata.Filename,
		FilePath:  storedPath,
		FileType:  fileType,
		FileSize:  written,
		Status:    docModel.StatusProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := handlerInstance.docs.SaveDocument(r.Context(), doc); err != nil {
		logRH.Error("Failed saving document record", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, documentId, "Storage error")
		return
	}

	// ingest runs on the request, the caller gets the final status back
	if err := handlerInstance.ragService.IngestDocument(r.Context(), documentId); err != nil {
		writePipelineError(w, documentId, err)
		return
	}

	processed, _ := handlerInstance.docs.GetDocument(r.Context(), documentId)
	writeJsonResponse(w, http.StatusCreated, api.UploadResponse{
		Success:  true,
		Message:  "Document uploaded and processed successfully",
		Document: adapter.ToDocumentResponse(processed),
	})
}

// QueryDocumentHandler godoc
// @Summary      Ask a question about a document
// @Description  Retrieves the most relevant chunks for the question and generates an answer grounded in them.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body      api.QueryRequest   true  "Document ID, question and optional chunk count"
// @Success      200      {object}  api.QueryResponse  "Answer with sources"
// @Failure      400      {object}  api.ErrorResponse  "Bad request or document not ready"
// @Failure      404      {object}  api.ErrorResponse  "Document or relevant content not found"
// @Router       /api/documents/query [post]
func QueryDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	if handlerInstance == nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Service not ready")
		return
	}

	var requestData api.QueryRequest
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			logRH.Error("Couldn't close the Query handler reader :", "error", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		logRH.Warn("Bad Query Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}
	if requestData.DocumentId == "" || strings.TrimSpace(requestData.Question) == "" {
		WriteErrorResponse(w, http.StatusBadRequest, requestData.DocumentId, "document_id and question are required")
		return
	}

	result, err := handlerInstance.ragService.Query(r.Context(), requestData.DocumentId, requestData.Question, requestData.NumChunks)
	if err != nil {
		writePipelineError(w, requestData.DocumentId, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToQueryResponse(result))
}

// ListDocumentsHandler godoc
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.ListDocumentsResponse
// @Router       /api/documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	docs, err := handlerInstance.docs.ListDocuments(r.Context())
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Failed listing documents")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToListResponse(docs))
}

// GetDocumentHandler godoc
// @Summary      Get one document with its chunks
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentDetailResponse
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Router       /api/documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	doc, found := handlerInstance.docs.GetDocument(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, id, "Document not found")
		return
	}
	chunks, err := handlerInstance.docs.GetChunks(r.Context(), id)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Failed loading chunks")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDetailResponse(doc, chunks))
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes the record, its chunks, its vectors and the stored file.
// @Tags         Documents
// @Produce      json
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  api.ErrorResponse  "Document not found"
// @Router       /api/documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")
	if err := handlerInstance.ragService.DeleteDocument(r.Context(), id); err != nil {
		writePipelineError(w, id, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// VectorStoreStatsHandler godoc
// @Summary      Vector store statistics
// @Tags         Vector Store
// @Produce      json
// @Success      200  {object}  api.StatsResponse
// @Router       /api/vector-store/stats [get]
func VectorStoreStatsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	stats := handlerInstance.index.Stats()
	storedDocuments := 0
	if docs, err := handlerInstance.docs.ListDocuments(r.Context()); err == nil {
		storedDocuments = len(docs)
	}
	writeJsonResponse(w, http.StatusOK, api.StatsResponse{
		Success:           true,
		TotalRecords:      stats.TotalRecords,
		DistinctDocuments: stats.DistinctDocuments,
		StoredDocuments:   storedDocuments,
	})
}

// VectorStoreResetHandler godoc
// @Summary      Reset the vector store
// @Description  Drops every embedded chunk. Documents keep their records but need re-ingestion to be queryable.
// @Tags         Vector Store
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/vector-store/reset [post]
func VectorStoreResetHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	if err := handlerInstance.index.Reset(); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Failed resetting vector store")
		return
	}
	writeJsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}
