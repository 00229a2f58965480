package geminiLLM

import (
	"context"
	"sync"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Debug("Gemini " + modelName + " client created")
		logger.Info("Gemini client created")
		go closeClient(ctx, geminiClient)
	}
}

func (c *llmClient) Answer(ctx context.Context, question string, documentTitle string, passages []llm.Passage) llm.GenerationResult {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	temperature := float32(config.ModelTemperature)
	maxTokens := int32(config.MaxAnswerTokens)
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: llm.SystemPrompt}},
		},
		Temperature:      &temperature,
		MaxOutputTokens:  maxTokens,
		ResponseMIMEType: "application/json",
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(llm.BuildUserPrompt(question, documentTitle, passages)),
		contentConfig,
	)
	if err != nil {
		log.Error("Error generating answer from Gemini", "error", err.Error())
		return llm.FallbackResult("model call failed")
	}
	if result == nil {
		log.Error("Gemini returned no result")
		return llm.FallbackResult("model returned no answer")
	}

	parsed, ok := llm.ParseModelJSON(result.Text())
	if !ok {
		log.Error("Gemini returned unparseable answer payload")
		return llm.FallbackResult("model response was not valid JSON")
	}
	return parsed
}

func closeClient(ctx context.Context, llmC *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llmC.client = nil
	llmC.modelName = ""
}
