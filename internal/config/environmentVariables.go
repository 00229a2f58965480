package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//auth - set a real token before deploying
	NoAuthBypass = true
	AuthToken    = ""

	//chunking
	ChunkSize    = 500 //tokens per chunk
	ChunkOverlap = 50  //tokens carried into the next chunk
	TokenizerEncoding = "cl100k_base"

	//retrieval
	DefaultSearchResults = 3
	MaxSearchResults     = 10
	SourcePreviewLength  = 200

	//embeddings
	EmbeddingProvider              = "openai" //"openai" or "google"
	EmbeddingBatchSize             = 100
	EmbeddingOutputDimensionality int32 = 1536
	OpenAIEmbeddingModel                = "text-embedding-3-small"
	GoogleEmbeddingModel                = "gemini-embedding-001"

	//llm
	// the newest OpenAI model is "gpt-4o" - do not change this unless explicitly requested
	LLMProvider             = "openai" //"openai" or "gemini"
	OpenAIChatModel         = "gpt-4o"
	GeminiModelName         = "gemini-2.5-flash-lite-preview-09-2025"
	ModelTemperature float64 = 0.2
	MaxAnswerTokens  int64   = 1000

	//vector store file
	VectorStorePath = "embeddings_data.json"

	//uploads
	MaxUploadSize     = 32 << 20 //32mb
	UploadDirName     = "document_data"
	PageWordEstimate  = 500 //words per page when the format has no real pages

	//serverTimeouts - ingest runs synchronously on the request, so writes get a long leash
	ReadTimeout            = 10 * time.Second
	WriteTimeout           = 180 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisDocumentStore = 0

	//documents live until deleted - no TTL
	RedisDocumentStoreTTL time.Duration = 0
)

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func GoogleAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}
