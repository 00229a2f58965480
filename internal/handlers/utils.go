package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/akolanti/docuquery/internal/adapter"
	"github.com/akolanti/docuquery/internal/config"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateContext(ctx context.Context) bool {
	log := logRH
	if v, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		log = log.With("traceId", v)
	}
	if ctx.Err() != nil {
		log.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		log.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, documentId string, errorMessage string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(documentId, errorMessage, ""))
}

func writePipelineError(w http.ResponseWriter, documentId string, err error) {
	writeJsonResponse(w, adapter.StatusForError(err),
		adapter.BadRequest(documentId, err.Error(), ""))
}

// getTargetDirectory resolves the per-document upload directory, creating it
// on first use.
func getTargetDirectory(documentId string) (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, config.UploadDirName, documentId)
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

func isSupportedExtension(ext string) bool {
	switch ext {
	case "txt", "md", "pdf", "docx":
		return true
	}
	return false
}
