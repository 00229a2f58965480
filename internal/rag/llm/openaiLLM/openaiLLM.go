package openaiLLM

import (
	"context"
	"sync"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/internal/rag/llm"
	"github.com/akolanti/docuquery/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var openaiClient *llmClient
var once sync.Once

func GetOpenAIClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_openai")
		if apikey == "" {
			logger.Error("OpenAI API key is not set")
			return
		}
		openaiClient = &llmClient{
			client:    openai.NewClient(option.WithAPIKey(apikey)),
			modelName: modelName,
		}
		logger.Debug("OpenAI " + modelName + " client created")
		logger.Info("OpenAI client created")
	})

	if openaiClient == nil {
		return nil
	}
	return openaiClient
}

func (c *llmClient) Answer(ctx context.Context, question string, documentTitle string, passages []llm.Passage) llm.GenerationResult {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(llm.SystemPrompt),
			openai.UserMessage(llm.BuildUserPrompt(question, documentTitle, passages)),
		},
		MaxTokens:   openai.Int(config.MaxAnswerTokens),
		Temperature: openai.Float(config.ModelTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		log.Error("Error generating answer from OpenAI", "error", err.Error())
		return llm.FallbackResult("model call failed")
	}
	if len(completion.Choices) == 0 {
		log.Error("OpenAI returned no choices")
		return llm.FallbackResult("model returned no answer")
	}

	result, ok := llm.ParseModelJSON(completion.Choices[0].Message.Content)
	if !ok {
		log.Error("OpenAI returned unparseable answer payload")
		return llm.FallbackResult("model response was not valid JSON")
	}
	return result
}
