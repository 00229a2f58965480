package tokenizer_test

import (
	"testing"

	"github.com/akolanti/docuquery/internal/rag/tokenizer"
)

func TestGet_ReturnsSingleton(t *testing.T) {
	first := tokenizer.Get()
	if first == nil {
		t.Fatal("tokenizer failed to initialize")
	}
	if second := tokenizer.Get(); second != first {
		t.Error("Get must return the same instance")
	}
}

func TestCountTokens(t *testing.T) {
	m := tokenizer.Get()
	if m == nil {
		t.Fatal("tokenizer failed to initialize")
	}

	if got := m.CountTokens(""); got != 0 {
		t.Errorf("empty string got %d tokens, want 0", got)
	}
	if got := m.CountTokens("hello world"); got < 1 {
		t.Errorf("got %d tokens, want at least 1", got)
	}
}

func TestEncodeDecodeRoundtrip(t *testing.T) {
	m := tokenizer.Get()
	if m == nil {
		t.Fatal("tokenizer failed to initialize")
	}

	text := "The quick brown fox jumps over the lazy dog."
	if got := m.Decode(m.Encode(text)); got != text {
		t.Errorf("roundtrip got %q, want %q", got, text)
	}
}

func TestTail(t *testing.T) {
	m := tokenizer.Get()
	if m == nil {
		t.Fatal("tokenizer failed to initialize")
	}

	text := "one two three four five six seven eight nine ten"

	// short text comes back whole
	if got := m.Tail(text, 1000); got != text {
		t.Errorf("Tail with a big budget got %q, want the full text", got)
	}

	tail := m.Tail(text, 3)
	if m.CountTokens(tail) != 3 {
		t.Errorf("tail has %d tokens, want 3", m.CountTokens(tail))
	}
	if len(tail) >= len(text) {
		t.Errorf("tail %q is not shorter than the input", tail)
	}
}
