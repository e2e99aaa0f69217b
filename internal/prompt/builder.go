// Package prompt assembles the final chat request from CLI flags,
// piped input, a resolved template, and config defaults.
package prompt

import (
	"fmt"
	"strings"

	"github.com/newthinker/lmt/internal/catalog"
	"github.com/newthinker/lmt/internal/config"
	"github.com/newthinker/lmt/internal/core"
	"github.com/newthinker/lmt/internal/llm"
	"github.com/newthinker/lmt/internal/template"
)

// stdinSeparator divides piped content from the positional instruction
// appended after it.
const stdinSeparator = "\n___\n"

// emojiFragment is appended to the system prompt when emoji output is
// requested.
const emojiFragment = "Add plenty of emojis as a colorful way to convey emotions. However, don't mention it."

// Options are the per-invocation inputs to Build.
type Options struct {
	// Positional is the prompt text from command-line arguments.
	Positional string
	// Stdin is piped/redirected input, empty when attached to a tty.
	Stdin string

	System      string
	Model       string
	Temperature float64
	Emoji       bool

	Template *template.Template
	Config   *config.Settings
}

// Build assembles the request. Precedence for the model, highest wins:
// CLI flag, template default, config default, catalog default. Piped
// stdin comes first in the user message, the positional text is
// appended after it as an additional instruction.
func Build(opts Options) (llm.ChatRequest, catalog.Model, error) {
	var req llm.ChatRequest

	if opts.System != "" && opts.Template != nil {
		return req, catalog.Model{}, fmt.Errorf("--system and --template cannot be combined")
	}
	if opts.Temperature < 0 || opts.Temperature > 2 {
		return req, catalog.Model{}, fmt.Errorf("temperature must be between 0 and 2, got %g", opts.Temperature)
	}

	system := opts.System
	user := opts.Stdin
	if opts.Positional != "" {
		if user != "" {
			user += stdinSeparator + opts.Positional
		} else {
			user = opts.Positional
		}
	}

	emoji := opts.Emoji
	if t := opts.Template; t != nil {
		system = t.System
		if t.User != "" {
			user = strings.TrimRight(t.User, " \n") + user
		}
		emoji = emoji || t.Emoji
	}

	if strings.TrimSpace(user) == "" {
		return req, catalog.Model{}, core.ErrNoPrompt
	}

	if emoji {
		system = addEmoji(system)
	}

	name := opts.Model
	if name == "" && opts.Template != nil {
		name = opts.Template.Model
	}
	if name == "" && opts.Config != nil {
		name = opts.Config.DefaultModel
	}
	if name == "" {
		name = catalog.DefaultModel
	}

	model, err := catalog.Resolve(name)
	if err != nil {
		return req, catalog.Model{}, err
	}

	req = llm.ChatRequest{
		Model:        model.ID,
		SystemPrompt: system,
		Messages:     []llm.Message{{Role: "user", Content: user}},
		Temperature:  opts.Temperature,
		NoSystemRole: model.NoSystemRole,
	}
	return req, model, nil
}

// addEmoji appends the emoji instruction, closing the existing prompt
// with a period first when it lacks one.
func addEmoji(system string) string {
	system = strings.TrimRight(system, " \n")
	if system == "" {
		return emojiFragment
	}
	if !strings.HasSuffix(system, ".") {
		system += "."
	}
	return system + " " + emojiFragment
}
