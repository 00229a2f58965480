package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

// pagedDocument is the per-page view collectPages walks. The pdf reader sits
// behind it so page-level failure handling is testable without a real file.
type pagedDocument interface {
	NumPage() int
	PlainPage(i int) (string, error)
}

type pdfDocument struct {
	reader *pdf.Reader
}

func (d pdfDocument) NumPage() int {
	return d.reader.NumPage()
}

func (d pdfDocument) PlainPage(i int) (string, error) {
	page := d.reader.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	return protectExtract(page)
}

func (e *fileExtractor) extractPDF(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("failed opening pdf", "error", err)
		return "", 0, docModel.WrapPipelineError(docModel.KindExtractionFailed,
			fmt.Sprintf("failed to open pdf: %v", err), err)
	}
	return e.collectPages(pdfDocument{reader: reader})
}

func (e *fileExtractor) collectPages(doc pagedDocument) (string, int, error) {
	numPages := doc.NumPage()
	e.logger.Debug("collectPages", "number of pages", numPages)

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		content, err := doc.PlainPage(i)
		if err != nil {
			// Log and move on - one bad page never kills the document
			e.logger.Error("Error parsing page content", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}

		sb.WriteString(fmt.Sprintf("\n[Page %d]\n%s\n", i, content))
	}

	//page count reflects the document, not how many pages survived extraction
	return sb.String(), numPages, nil
}

// isWordDocContainer checks the file header for the declared type. docx and
// odt are zip containers, rtf opens with a fixed control word. cat falls back
// to returning the raw bytes for anything it cannot detect, so without this
// check a corrupt file would "extract" its own garbage as text.
func isWordDocContainer(data []byte, fileType string) bool {
	if fileType == "rtf" {
		return bytes.HasPrefix(data, []byte(`{\rtf`))
	}
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// extractWordDoc handles docx/odt/rtf via lu4p/cat: paragraphs in order, blanks dropped.
func (e *fileExtractor) extractWordDoc(data []byte, fileType string) (string, int, error) {
	if !isWordDocContainer(data, fileType) {
		return "", 0, docModel.NewPipelineError(docModel.KindExtractionFailed,
			fmt.Sprintf("file content is not a valid %s container", fileType))
	}

	text, err := cat.FromBytes(data)
	if err != nil {
		e.logger.Error("Error extracting content from doc", "error", err)
		return "", 0, docModel.WrapPipelineError(docModel.KindExtractionFailed,
			fmt.Sprintf("failed to extract document: %v", err), err)
	}

	var sb strings.Builder
	for _, paragraph := range strings.Split(text, "\n") {
		if strings.TrimSpace(paragraph) == "" {
			continue
		}
		sb.WriteString(paragraph)
		sb.WriteString("\n")
	}

	cleaned := sb.String()
	return cleaned, estimatePageCount(cleaned), nil
}

// protectExtract guards the pdf library against pages that hang or panic the parser.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page extraction panicked: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}
