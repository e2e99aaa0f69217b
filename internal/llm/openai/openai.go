// internal/llm/openai/openai.go
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/newthinker/lmt/internal/core"
	"github.com/newthinker/lmt/internal/llm"
	"github.com/sashabaranov/go-openai"
)

// Provider implements the LLM interface for OpenAI.
type Provider struct {
	client *openai.Client
}

// New creates a new OpenAI provider.
func New(apiKey string) (*Provider, error) {
	if apiKey == "" {
		return nil, core.ErrAuthMissing
	}
	return &Provider{client: openai.NewClient(apiKey)}, nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "openai"
}

// Chat sends a non-streaming chat request to the OpenAI API.
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	resp, err := p.client.CreateChatCompletion(ctx, buildRequest(req, false))
	if err != nil {
		return nil, wrapAPIError(err)
	}

	content := ""
	finishReason := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		finishReason = string(resp.Choices[0].FinishReason)
	}

	return &llm.ChatResponse{
		Content: content,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
		FinishReason: finishReason,
	}, nil
}

// ChatStream sends a streaming chat request, invoking fn per fragment.
func (p *Provider) ChatStream(ctx context.Context, req llm.ChatRequest, fn llm.StreamFunc) (*llm.ChatResponse, error) {
	stream, err := p.client.CreateChatCompletionStream(ctx, buildRequest(req, true))
	if err != nil {
		return nil, wrapAPIError(err)
	}
	defer stream.Close()

	var content string
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapAPIError(err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		content += delta
		if err := fn(delta); err != nil {
			return nil, err
		}
	}

	return &llm.ChatResponse{Content: content}, nil
}

func buildRequest(req llm.ChatRequest, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	// Reasoning-tier models reject a system-role message: fold the
	// system prompt into the first user message instead.
	system := req.SystemPrompt
	if system != "" && !req.NoSystemRole {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
		system = ""
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		content := m.Content
		if system != "" && role == openai.ChatMessageRoleUser {
			content = system + "\n\n" + content
			system = ""
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: content,
		})
	}

	out := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		Stream:      stream,
	}
	if req.MaxTokens > 0 {
		out.MaxTokens = req.MaxTokens
	}
	return out
}

// wrapAPIError maps SDK errors onto the REQUEST_FAILED taxonomy,
// keeping the server's message verbatim.
func wrapAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &core.RequestError{
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &core.RequestError{
			StatusCode: reqErr.HTTPStatusCode,
			Message:    fmt.Sprintf("%v", reqErr.Err),
		}
	}
	return &core.RequestError{Message: err.Error()}
}
