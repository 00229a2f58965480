package handlers

import (
	"sync"

	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/rag"
	"github.com/akolanti/docuquery/internal/rag/vectorstore"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

var (
	handlerInstance *DocumentHandler //private singleton
	once            sync.Once
	logDH           *logger_i.Logger
	logRH           *logger_i.Logger
)

type DocumentHandler struct {
	ragService rag.Service
	docs       docModel.DocumentStore
	index      vectorstore.Index
}

func InitDocumentHandler(ragService rag.Service, docs docModel.DocumentStore, index vectorstore.Index) {
	once.Do(func() {
		handlerInstance = &DocumentHandler{
			ragService: ragService,
			docs:       docs,
			index:      index,
		}

		logDH = logger_i.NewLogger("DocumentHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logDH.Info("Starting document handler")
	})
}
