// Package catalog holds the static model catalog: full API identifiers,
// aliases, per-million-token pricing, and tokenizer encodings. The table
// is versioned data, appended to as providers ship new models.
package catalog

import (
	"fmt"
	"strings"

	"github.com/newthinker/lmt/internal/core"
)

// Model is one catalog row.
type Model struct {
	// ID is the full identifier sent to the provider API.
	ID       string
	Provider string
	Aliases  []string

	// Pricing in USD per one million tokens.
	InputPerMillion  float64
	OutputPerMillion float64

	// Encoding names the tiktoken encoding for this model family.
	// Empty means no exact tokenizer is available and a heuristic
	// count is used instead.
	Encoding string

	// NoSystemRole marks reasoning-tier models that reject
	// system-role messages.
	NoSystemRole bool
}

// DefaultModel is used when neither flag, template, nor config names one.
const DefaultModel = "gpt-4o-mini"

// models is the catalog in display order.
var models = []Model{
	// OpenAI
	{ID: "gpt-3.5-turbo", Provider: "openai", Aliases: []string{"chatgpt", "3.5"}, InputPerMillion: 0.50, OutputPerMillion: 1.50, Encoding: "cl100k_base"},
	{ID: "gpt-3.5-turbo-instruct", Provider: "openai", InputPerMillion: 1.50, OutputPerMillion: 2.00, Encoding: "cl100k_base"},
	{ID: "gpt-4", Provider: "openai", Aliases: []string{"4", "gpt4"}, InputPerMillion: 30, OutputPerMillion: 60, Encoding: "cl100k_base"},
	{ID: "gpt-4-turbo", Provider: "openai", Aliases: []string{"4t", "4-turbo", "gpt4-turbo"}, InputPerMillion: 10, OutputPerMillion: 30, Encoding: "cl100k_base"},
	{ID: "gpt-4-32k", Provider: "openai", Aliases: []string{"4-32k", "gpt4-32k"}, InputPerMillion: 60, OutputPerMillion: 120, Encoding: "cl100k_base"},
	{ID: "gpt-4o", Provider: "openai", Aliases: []string{"4o"}, InputPerMillion: 2.50, OutputPerMillion: 10, Encoding: "o200k_base"},
	{ID: "gpt-4o-mini", Provider: "openai", Aliases: []string{"4o-mini", "4omini", "4om"}, InputPerMillion: 0.15, OutputPerMillion: 0.60, Encoding: "o200k_base"},
	{ID: "chatgpt-4o-latest", Provider: "openai", InputPerMillion: 5, OutputPerMillion: 15, Encoding: "o200k_base"},
	{ID: "gpt-4.1", Provider: "openai", Aliases: []string{"4.1"}, InputPerMillion: 2, OutputPerMillion: 8, Encoding: "o200k_base"},
	{ID: "gpt-4.1-mini", Provider: "openai", Aliases: []string{"4.1-mini"}, InputPerMillion: 0.40, OutputPerMillion: 1.60, Encoding: "o200k_base"},
	{ID: "gpt-4.1-nano", Provider: "openai", Aliases: []string{"4.1-nano"}, InputPerMillion: 0.10, OutputPerMillion: 0.40, Encoding: "o200k_base"},
	{ID: "gpt-4.5-preview", Provider: "openai", InputPerMillion: 75, OutputPerMillion: 150, Encoding: "o200k_base"},

	// OpenAI reasoning tier: these models reject system-role messages.
	{ID: "o1", Provider: "openai", InputPerMillion: 15, OutputPerMillion: 60, Encoding: "o200k_base", NoSystemRole: true},
	{ID: "o1-preview", Provider: "openai", InputPerMillion: 15, OutputPerMillion: 60, Encoding: "o200k_base", NoSystemRole: true},
	{ID: "o1-mini", Provider: "openai", InputPerMillion: 1.10, OutputPerMillion: 4.40, Encoding: "o200k_base", NoSystemRole: true},
	{ID: "o3", Provider: "openai", InputPerMillion: 2, OutputPerMillion: 8, Encoding: "o200k_base", NoSystemRole: true},
	{ID: "o3-mini", Provider: "openai", InputPerMillion: 1.10, OutputPerMillion: 4.40, Encoding: "o200k_base", NoSystemRole: true},
	{ID: "o4-mini", Provider: "openai", InputPerMillion: 1.10, OutputPerMillion: 4.40, Encoding: "o200k_base", NoSystemRole: true},

	// Anthropic
	{ID: "claude-opus-4-20250514", Provider: "claude", Aliases: []string{"opus", "claude-opus-4"}, InputPerMillion: 15, OutputPerMillion: 75},
	{ID: "claude-sonnet-4-20250514", Provider: "claude", Aliases: []string{"sonnet", "claude-sonnet-4"}, InputPerMillion: 3, OutputPerMillion: 15},
	{ID: "claude-3-5-haiku-20241022", Provider: "claude", Aliases: []string{"haiku", "claude-3.5-haiku"}, InputPerMillion: 0.25, OutputPerMillion: 1.25},

	// Ollama (local, free)
	{ID: "llama3.1", Provider: "ollama", Aliases: []string{"llama3"}},
	{ID: "qwen2.5:32b", Provider: "ollama", Aliases: []string{"qwen"}},
}

// All returns the catalog rows in stable display order.
func All() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Resolve matches a model name or alias, case-insensitively.
func Resolve(name string) (Model, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, m := range models {
		if needle == strings.ToLower(m.ID) {
			return m, nil
		}
		for _, alias := range m.Aliases {
			if needle == strings.ToLower(alias) {
				return m, nil
			}
		}
	}
	return Model{}, core.WrapError(core.ErrUnknownModel,
		fmt.Errorf("%q is not in the catalog, see `lmt models`", name))
}
