package llm

import (
	"encoding/json"
	"strings"
)

type modelResponse struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// ParseModelJSON decodes the model's JSON object. Malformed output or an
// empty answer reports ok=false so the caller can degrade to the fallback.
func ParseModelJSON(raw string) (GenerationResult, bool) {
	var parsed modelResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &parsed); err != nil {
		return GenerationResult{}, false
	}
	if strings.TrimSpace(parsed.Answer) == "" {
		return GenerationResult{}, false
	}
	if parsed.Confidence < 0 {
		parsed.Confidence = 0
	}
	if parsed.Confidence > 1 {
		parsed.Confidence = 1
	}
	return GenerationResult{
		Answer:     parsed.Answer,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}, true
}
