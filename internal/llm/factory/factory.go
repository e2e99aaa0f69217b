// internal/llm/factory/factory.go
package factory

import (
	"fmt"

	"github.com/newthinker/lmt/internal/config"
	"github.com/newthinker/lmt/internal/llm"
	"github.com/newthinker/lmt/internal/llm/claude"
	"github.com/newthinker/lmt/internal/llm/ollama"
	"github.com/newthinker/lmt/internal/llm/openai"
)

// New creates the LLM provider serving the named backend. API keys are
// resolved from the config directory; a missing key surfaces as
// AUTH_MISSING before any network call.
func New(dir string, cfg *config.Settings, provider string) (llm.Provider, error) {
	switch provider {
	case "openai":
		key, err := config.APIKey(dir, "openai")
		if err != nil {
			return nil, err
		}
		return openai.New(key)
	case "claude":
		key, err := config.APIKey(dir, "claude")
		if err != nil {
			return nil, err
		}
		return claude.New(key)
	case "ollama":
		endpoint := ""
		if cfg != nil {
			endpoint = cfg.Ollama.Endpoint
		}
		return ollama.New(endpoint)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
