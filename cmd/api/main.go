// @title           Document Q&A API
// @version         1.0
// @description     Upload documents and ask questions answered from their content.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/data/store"
	"github.com/akolanti/docuquery/internal/domain/docModel"
	"github.com/akolanti/docuquery/internal/handlers"
	"github.com/akolanti/docuquery/internal/rag"
	"github.com/akolanti/docuquery/internal/rag/chunker"
	"github.com/akolanti/docuquery/internal/rag/embedding"
	"github.com/akolanti/docuquery/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/docuquery/internal/rag/embedding/openaiEmbedding"
	"github.com/akolanti/docuquery/internal/rag/extract"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/internal/rag/llm/geminiLLM"
	"github.com/akolanti/docuquery/internal/rag/llm/openaiLLM"
	"github.com/akolanti/docuquery/internal/rag/tokenizer"
	"github.com/akolanti/docuquery/internal/rag/vectorstore/filestore"
	"github.com/akolanti/docuquery/internal/server"
	"github.com/akolanti/docuquery/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	var documentStore docModel.DocumentStore
	if redisDocs := store.GetRedisDocumentStore(serviceContext); redisDocs != nil {
		documentStore = redisDocs
	} else {
		logger.Error("Redis store is offline, falling back to in-memory")
		documentStore = store.InitInMemoryDocumentStore()
	}

	measurer := tokenizer.Get()
	if measurer == nil {
		logger.Error("Tokenizer failed to initialize. Shutting down.")
		return
	}

	embedder := getEmbedder(serviceContext)
	llmProvider := getLLMProvider(serviceContext)
	if embedder == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embedder != nil, "LLMProvider", llmProvider != nil)
		return
	}

	index, err := filestore.New(config.VectorStorePath, embedder)
	if err != nil {
		logger.Error("Vector store failed to load. Shutting down.", "error", err)
		return
	}

	ragService := rag.NewService(
		documentStore,
		index,
		extract.NewExtractor(),
		chunker.New(measurer, config.ChunkSize, config.ChunkOverlap),
		llmProvider,
	)

	handlers.InitDocumentHandler(ragService, documentStore, index)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func getEmbedder(ctx context.Context) embedding.Embedder {
	if config.EmbeddingProvider == "google" {
		return googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	}
	return openaiEmbedding.GetOpenAIEmbeddingClient(ctx, config.OpenAIEmbeddingModel, config.OpenAIAPIKey())
}

func getLLMProvider(ctx context.Context) llm.Provider {
	if config.LLMProvider == "gemini" {
		return geminiLLM.GetGeminiClient(ctx, config.GeminiModelName, config.GoogleAPIKey())
	}
	return openaiLLM.GetOpenAIClient(ctx, config.OpenAIChatModel, config.OpenAIAPIKey())
}
