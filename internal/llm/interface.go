package llm

import "context"

// StreamFunc receives one response fragment at a time. Returning an
// error aborts the stream.
type StreamFunc func(delta string) error

// Provider defines the interface for LLM providers
type Provider interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	ChatStream(ctx context.Context, req ChatRequest, fn StreamFunc) (*ChatResponse, error)
}

// ChatRequest holds the request parameters
type ChatRequest struct {
	Model        string
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64

	// NoSystemRole marks models that reject system-role messages.
	// Providers fold the system prompt into the first user message.
	NoSystemRole bool
}

// Message represents a chat message
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ChatResponse holds the response from the LLM
type ChatResponse struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
}
