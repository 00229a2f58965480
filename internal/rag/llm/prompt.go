package llm

import (
	"fmt"
	"strings"
)

// SystemPrompt pins the model to the supplied context and asks for a JSON
// object so both providers can share the same parsing.
const SystemPrompt = `You are a helpful AI assistant that answers questions based on provided document context.

Your task is to:
1. Answer the user's question using ONLY the information provided in the context
2. Be accurate and concise
3. If the context doesn't contain enough information, say so clearly
4. Provide a confidence score between 0.0 and 1.0 based on how well the context supports your answer
5. Always respond in JSON format with the following structure:
{
    "answer": "Your detailed answer here",
    "confidence": 0.85,
    "reasoning": "Brief explanation of why you have this confidence level"
}

Guidelines:
- If the context clearly answers the question: confidence 0.8-1.0
- If the context partially answers the question: confidence 0.4-0.7
- If the context barely relates to the question: confidence 0.1-0.3
- If the context doesn't help at all: confidence 0.0
`

// BuildUserPrompt lays out the document title, numbered context blocks with
// page info, and the question.
func BuildUserPrompt(question string, documentTitle string, passages []Passage) string {
	var contextParts []string
	for i, p := range passages {
		pageInfo := ""
		if len(p.PageNumbers) > 0 {
			pages := make([]string, len(p.PageNumbers))
			for j, page := range p.PageNumbers {
				pages[j] = fmt.Sprint(page)
			}
			pageInfo = fmt.Sprintf(" (Page %s)", strings.Join(pages, ", "))
		}
		contextParts = append(contextParts, fmt.Sprintf("[Context %d]%s:\n%s\n", i+1, pageInfo, p.Text))
	}

	return fmt.Sprintf(`Document: %q

Context:
%s

Question: %s

Please answer the question based on the provided context. Remember to respond in JSON format with answer, confidence, and reasoning fields.`,
		documentTitle, strings.Join(contextParts, "\n"), question)
}
