package tokens

import (
	"testing"

	"github.com/newthinker/lmt/internal/catalog"
	"github.com/newthinker/lmt/internal/llm"
)

func TestCount_Deterministic(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog."

	first := Count(text, "cl100k_base")
	if first <= 0 {
		t.Fatalf("expected positive count, got %d", first)
	}
	for i := 0; i < 3; i++ {
		if got := Count(text, "cl100k_base"); got != first {
			t.Fatalf("count not deterministic: %d != %d", got, first)
		}
	}
}

func TestCount_HeuristicFallback(t *testing.T) {
	// 16 runes at ~4 chars per token.
	got := Count("abcdefghijklmnop", "")
	if got != 4 {
		t.Errorf("expected 4, got %d", got)
	}
}

func TestCount_EmptyText(t *testing.T) {
	if got := Count("", "cl100k_base"); got != 0 {
		t.Errorf("expected 0 for empty text, got %d", got)
	}
	if got := Count("", ""); got != 0 {
		t.Errorf("expected 0 for empty text under heuristic, got %d", got)
	}
}

func TestEstimateRequest_IncludesSystem(t *testing.T) {
	model, err := catalog.Resolve("gpt-4o-mini")
	if err != nil {
		t.Fatal(err)
	}

	req := llm.ChatRequest{
		SystemPrompt: "You are a helpful assistant.",
		Messages:     []llm.Message{{Role: "user", Content: "Say hello."}},
	}

	withSystem := EstimateRequest(req, model)
	if withSystem.SystemExcluded {
		t.Error("system prompt should be counted for gpt-4o-mini")
	}

	req.SystemPrompt = ""
	withoutSystem := EstimateRequest(req, model)
	if withSystem.Tokens <= withoutSystem.Tokens {
		t.Errorf("system prompt should add tokens: %d <= %d",
			withSystem.Tokens, withoutSystem.Tokens)
	}
}

func TestEstimateRequest_ExcludesSystemForReasoningTier(t *testing.T) {
	model, err := catalog.Resolve("o1-mini")
	if err != nil {
		t.Fatal(err)
	}

	req := llm.ChatRequest{
		SystemPrompt: "You are a helpful assistant.",
		Messages:     []llm.Message{{Role: "user", Content: "Say hello."}},
	}

	est := EstimateRequest(req, model)
	if !est.SystemExcluded {
		t.Error("system prompt exclusion should be flagged for o1-mini")
	}

	req.SystemPrompt = ""
	bare := EstimateRequest(req, model)
	if est.Tokens != bare.Tokens {
		t.Errorf("excluded system prompt must not change the count: %d != %d",
			est.Tokens, bare.Tokens)
	}
}

func TestEstimateRequest_Cost(t *testing.T) {
	model := catalog.Model{ID: "fake", Provider: "openai", InputPerMillion: 10}

	req := llm.ChatRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello world"}},
	}

	est := EstimateRequest(req, model)
	want := float64(est.Tokens) / 1e6 * 10
	if est.CostUSD != want {
		t.Errorf("expected cost %f, got %f", want, est.CostUSD)
	}
}

func TestEstimateRequest_FreeLocalModel(t *testing.T) {
	model, err := catalog.Resolve("llama3.1")
	if err != nil {
		t.Fatal(err)
	}

	est := EstimateRequest(llm.ChatRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello"}},
	}, model)

	if est.CostUSD != 0 {
		t.Errorf("local models should cost nothing, got %f", est.CostUSD)
	}
	if est.Tokens <= 0 {
		t.Errorf("expected positive token count, got %d", est.Tokens)
	}
}
