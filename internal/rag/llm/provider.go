package llm

import "context"

// Passage is one retrieved chunk handed to the model as grounding context.
type Passage struct {
	ChunkIndex  int
	Text        string
	PageNumbers []int
	Similarity  float64
	TokenCount  int
}

// GenerationResult is what the model produced. Degraded means the provider
// could not generate and fell back, not that the query failed.
type GenerationResult struct {
	Answer     string
	Confidence float64
	Reasoning  string
	Degraded   bool
}

// Provider generates an answer from retrieved passages. It never returns an
// error: any provider failure comes back as the fallback result so a broken
// model key cannot take retrieval down with it.
type Provider interface {
	Answer(ctx context.Context, question string, documentTitle string, passages []Passage) GenerationResult
}

const FallbackAnswer = "I was unable to generate an answer for this question. Please try again."

func FallbackResult(detail string) GenerationResult {
	return GenerationResult{
		Answer:     FallbackAnswer,
		Confidence: 0,
		Reasoning:  detail,
		Degraded:   true,
	}
}
