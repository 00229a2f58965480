package openaiEmbedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/rag/embedding"
	"github.com/akolanti/docuquery/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client

type client struct {
	openAi openai.Client
	model  string
}

func GetOpenAIEmbeddingClient(ctx context.Context, modelName string, apikey string) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("openai_embedding")
		if apikey == "" {
			logger.Error("OpenAI API key is not set")
			return
		}
		embeddingClient = &client{
			openAi: openai.NewClient(option.WithAPIKey(apikey)),
			model:  modelName,
		}
		logger.Debug("OpenAI Embedding model name: " + modelName)
		logger.Info("OpenAI Embedding client created")
	})

	//if init still fails
	if embeddingClient == nil {
		return nil
	}
	return embeddingClient
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	res, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err.Error())
		return nil, err
	}
	if len(res.Data) != len(chunks) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(res.Data), len(chunks))
	}

	results := make([][]float32, len(res.Data))
	for _, d := range res.Data {
		vector := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vector[i] = float32(v)
		}
		results[d.Index] = vector
	}
	return results, nil
}
