// Package tokens estimates prompt token counts and request cost using
// tiktoken encodings, with a character heuristic for model families
// that have no published tokenizer.
package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"

	"github.com/newthinker/lmt/internal/catalog"
	"github.com/newthinker/lmt/internal/llm"
)

// Message framing overhead used by the chat wire format: each message
// costs a few tokens of scaffolding and every reply is primed with an
// assistant header.
const (
	tokensPerMessage = 3
	replyPriming     = 3
)

// heuristicCharsPerToken approximates 4 characters per token for
// families without an exact encoding.
const heuristicCharsPerToken = 4

// Estimate reports the token count and input cost of a prompt.
type Estimate struct {
	Tokens  int
	CostUSD float64

	// SystemExcluded is set when the model rejects system-role
	// messages and the system prompt was left out of the count.
	SystemExcluded bool
}

var (
	encMu    sync.Mutex
	encCache = map[string]*tiktoken.Tiktoken{}
)

func encodingFor(name string) *tiktoken.Tiktoken {
	if name == "" {
		return nil
	}
	encMu.Lock()
	defer encMu.Unlock()

	if enc, ok := encCache[name]; ok {
		return enc
	}
	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		// Unrecognized encoding name: fall back to cl100k_base.
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil
		}
	}
	encCache[name] = enc
	return enc
}

// Count returns the token count of text under the named encoding, or
// the character heuristic when no encoding is available.
func Count(text, encoding string) int {
	if enc := encodingFor(encoding); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	runes := utf8.RuneCountInString(text)
	return (runes + heuristicCharsPerToken - 1) / heuristicCharsPerToken
}

// EstimateRequest counts the tokens of req as it would be sent to
// model and prices them at the model's input rate. Models flagged
// NoSystemRole have the system prompt excluded from the count, and the
// exclusion is reported so callers can surface it.
func EstimateRequest(req llm.ChatRequest, model catalog.Model) Estimate {
	var est Estimate

	if req.SystemPrompt != "" {
		if model.NoSystemRole {
			est.SystemExcluded = true
		} else {
			est.Tokens += tokensPerMessage + Count(req.SystemPrompt, model.Encoding)
		}
	}

	for _, m := range req.Messages {
		est.Tokens += tokensPerMessage + Count(m.Content, model.Encoding)
	}
	est.Tokens += replyPriming

	est.CostUSD = float64(est.Tokens) / 1e6 * model.InputPerMillion
	return est
}
