package docModel

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "UNSUPPORTED_FORMAT"
	KindExtractionFailed  ErrorKind = "EXTRACTION_FAILED"
	KindEmptyChunkResult  ErrorKind = "EMPTY_CHUNK_RESULT"
	KindEmbeddingFailed   ErrorKind = "EMBEDDING_FAILED"
	KindNotReady          ErrorKind = "NOT_READY"
	KindNoRelevantContent ErrorKind = "NO_RELEVANT_CONTENT"
	KindNotFound          ErrorKind = "NOT_FOUND"
)

// PipelineError carries a machine-checkable kind plus a human detail string.
// Everything the ingest/query pipelines can fail with is one of these.
type PipelineError struct {
	Kind   ErrorKind
	Detail string
	cause  error
}

func (e *PipelineError) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *PipelineError) Unwrap() error {
	return e.cause
}

func NewPipelineError(kind ErrorKind, detail string) *PipelineError {
	return &PipelineError{Kind: kind, Detail: detail}
}

func WrapPipelineError(kind ErrorKind, detail string, cause error) *PipelineError {
	return &PipelineError{Kind: kind, Detail: detail, cause: cause}
}

// KindOf returns the error kind, or "" for errors from outside the pipeline.
func KindOf(err error) ErrorKind {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
