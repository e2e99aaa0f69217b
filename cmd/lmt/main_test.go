package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/newthinker/lmt/internal/catalog"
	"github.com/newthinker/lmt/internal/core"
)

// execute runs the root command with fresh flag state, a fake stdin
// pipe, and an isolated config dir.
func execute(t *testing.T, dir, stdin string, args ...string) (string, error) {
	t.Helper()

	flagSystem = ""
	flagModel = ""
	flagTemplate = ""
	flagEmoji = false
	flagTokens = false
	flagTemperature = 1
	flagNoStream = false
	flagRaw = false
	cfgDir = ""
	debug = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append(args, "--config-dir", dir))

	err := rootCmd.Execute()
	return out.String(), err
}

func TestModels_OneEntryPerCatalogRow(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "models")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, m := range catalog.All() {
		if !strings.Contains(out, m.ID+"\n") {
			t.Errorf("models output missing %s", m.ID)
		}
		if n := strings.Count(out, m.ID+"\n"); n != 1 {
			t.Errorf("models output has %d entries for %s, want 1", n, m.ID)
		}
	}
}

func TestTokens_SkipsNetworkCall(t *testing.T) {
	// No API key anywhere: --tokens must still succeed.
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	out, err := execute(t, t.TempDir(), "", "--tokens", "Say hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Number of tokens in the prompt:") {
		t.Errorf("expected token count in output: %q", out)
	}
	if !strings.Contains(out, "Cost of the prompt") {
		t.Errorf("expected cost estimate in output: %q", out)
	}
}

func TestTokens_FlagsSystemExclusion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "--tokens", "-m", "o1-mini", "-s", "persona", "Say hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "excluded from the count") {
		t.Errorf("expected system-prompt exclusion note: %q", out)
	}
}

func TestPrompt_MissingAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := execute(t, t.TempDir(), "", "Say hello")
	if !errors.Is(err, core.ErrAuthMissing) {
		t.Fatalf("expected AUTH_MISSING, got %v", err)
	}
}

func TestPrompt_UnknownModel(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "-m", "gpt-9000", "Say hello")
	if !errors.Is(err, core.ErrUnknownModel) {
		t.Fatalf("expected UNKNOWN_MODEL, got %v", err)
	}
}

func TestPrompt_NoPromptSupplied(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "--tokens")
	if !errors.Is(err, core.ErrNoPrompt) {
		t.Fatalf("expected NO_PROMPT, got %v", err)
	}
}

func TestTemplates_ListEmpty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "templates", "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("expected empty list, got %q", out)
	}
}

func TestTemplates_RemoveMissing(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "templates", "remove", "ghost")
	if !errors.Is(err, core.ErrTemplateNotFound) {
		t.Fatalf("expected TEMPLATE_NOT_FOUND, got %v", err)
	}
}
