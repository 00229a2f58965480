package tokenizer

import (
	"sync"

	"github.com/akolanti/docuquery/internal/config"
	"github.com/akolanti/docuquery/pkg/logger_i"
	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

var (
	once     sync.Once
	instance *Measurer
	logger   *logger_i.Logger
)

// Measurer counts and slices text in model tokens (cl100k_base, same as GPT-4).
// The chunker sizes everything through this so chunk budgets line up with
// what the embedding model actually sees.
type Measurer struct {
	enc *tiktoken.Tiktoken
}

// Get returns the process-wide measurer, or nil if the encoding could not load.
func Get() *Measurer {
	once.Do(func() {
		logger = logger_i.NewLogger("Tokenizer")
		//offline loader so we never hit the network for the BPE dictionary
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
		enc, err := tiktoken.GetEncoding(config.TokenizerEncoding)
		if err != nil {
			logger.Error("could not load token encoding", "encoding", config.TokenizerEncoding, "error", err)
			return
		}
		instance = &Measurer{enc: enc}
	})
	return instance
}

func (m *Measurer) CountTokens(text string) int {
	return len(m.enc.Encode(text, nil, nil))
}

func (m *Measurer) Encode(text string) []int {
	return m.enc.Encode(text, nil, nil)
}

func (m *Measurer) Decode(tokens []int) string {
	return m.enc.Decode(tokens)
}

// Tail returns the last n tokens of text decoded back to a string.
// If the text has n tokens or fewer it comes back whole.
func (m *Measurer) Tail(text string, n int) string {
	tokens := m.enc.Encode(text, nil, nil)
	if len(tokens) <= n {
		return text
	}
	return m.enc.Decode(tokens[len(tokens)-n:])
}
