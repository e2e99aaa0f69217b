package catalog

import (
	"errors"
	"testing"

	"github.com/newthinker/lmt/internal/core"
)

func TestAll_RowsAreWellFormed(t *testing.T) {
	rows := All()
	if len(rows) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := make(map[string]string) // name -> row ID that claimed it
	for _, m := range rows {
		if m.ID == "" {
			t.Error("row with empty ID")
		}
		if m.Provider == "" {
			t.Errorf("%s: empty provider", m.ID)
		}
		if owner, dup := seen[m.ID]; dup {
			t.Errorf("%s: duplicate of %s", m.ID, owner)
		}
		seen[m.ID] = m.ID
		for _, alias := range m.Aliases {
			if owner, dup := seen[alias]; dup {
				t.Errorf("alias %s of %s: already claimed by %s", alias, m.ID, owner)
			}
			seen[alias] = m.ID
		}
	}
}

func TestResolve_EveryAlias(t *testing.T) {
	for _, m := range All() {
		for _, alias := range append([]string{m.ID}, m.Aliases...) {
			got, err := Resolve(alias)
			if err != nil {
				t.Errorf("Resolve(%q): %v", alias, err)
				continue
			}
			if got.ID != m.ID {
				t.Errorf("Resolve(%q) = %s, want %s", alias, got.ID, m.ID)
			}
		}
	}
}

func TestResolve_CaseInsensitive(t *testing.T) {
	m, err := Resolve("GPT-4o")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != "gpt-4o" {
		t.Errorf("expected gpt-4o, got %s", m.ID)
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, err := Resolve("gpt-9000")
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !errors.Is(err, core.ErrUnknownModel) {
		t.Errorf("expected UNKNOWN_MODEL, got %v", err)
	}
}

func TestDefaultModel_InCatalog(t *testing.T) {
	m, err := Resolve(DefaultModel)
	if err != nil {
		t.Fatalf("default model not in catalog: %v", err)
	}
	if m.NoSystemRole {
		t.Error("default model must accept system messages")
	}
}

func TestReasoningTier_NoSystemRole(t *testing.T) {
	for _, name := range []string{"o1", "o1-mini", "o3", "o3-mini", "o4-mini"} {
		m, err := Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if !m.NoSystemRole {
			t.Errorf("%s should be flagged NoSystemRole", name)
		}
	}
}
