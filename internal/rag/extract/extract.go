package extract

import (
	"fmt"
	"strings"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

// Extractor turns raw file bytes into plain text plus a page count.
// PDF text carries inline "[Page N]" markers so the chunker can keep provenance.
type Extractor interface {
	Extract(data []byte, fileType string) (text string, pageCount int, err error)
}

type fileExtractor struct {
	logger *logger_i.Logger
}

func NewExtractor() Extractor {
	return &fileExtractor{
		logger: logger_i.NewLogger("Extractor"),
	}
}

func (e *fileExtractor) Extract(data []byte, fileType string) (string, int, error) {
	normalized := strings.ToLower(strings.TrimPrefix(fileType, "."))
	switch normalized {
	case "txt", "md":
		return e.extractPlainText(data)
	case "pdf":
		return e.extractPDF(data)
	case "docx", "odt", "rtf":
		return e.extractWordDoc(data, normalized)
	default:
		return "", 0, docModel.NewPipelineError(docModel.KindUnsupportedFormat,
			fmt.Sprintf("unsupported file type: %s", fileType))
	}
}

// extractPlainText reads txt/md as UTF-8; invalid sequences are replaced, not rejected.
func (e *fileExtractor) extractPlainText(data []byte) (string, int, error) {
	text := strings.ToValidUTF8(string(data), "�")
	return text, estimatePageCount(text), nil
}

// estimatePageCount guesses pages for formats with no real page boundaries.
func estimatePageCount(text string) int {
	pages := len(strings.Fields(text)) / config.PageWordEstimate
	if pages < 1 {
		return 1
	}
	return pages
}
