package template

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newthinker/lmt/internal/core"
)

// writeEditor returns an EditFunc that overwrites the file with content.
func writeEditor(content string) EditFunc {
	return func(path string) error {
		return os.WriteFile(path, []byte(content), 0o644)
	}
}

// noopEditor leaves the file untouched.
func noopEditor(string) error { return nil }

func TestAdd_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	system := "You are a shell one-liner expert."
	s := NewStoreWithEditor(dir, writeEditor("system: "+system+"\n"))

	if err := s.Add("shell"); err != nil {
		t.Fatalf("failed to add template: %v", err)
	}

	got, err := s.Get("shell")
	if err != nil {
		t.Fatalf("failed to get template: %v", err)
	}
	if got.System != system {
		t.Errorf("expected %q, got %q", system, got.System)
	}
	if got.Name != "shell" {
		t.Errorf("expected name shell, got %q", got.Name)
	}
}

func TestAdd_AbortsWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreWithEditor(dir, noopEditor)

	err := s.Add("untouched")
	if !errors.Is(err, ErrUnchanged) {
		t.Fatalf("expected ErrUnchanged, got %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "untouched.yaml")); !os.IsNotExist(err) {
		t.Error("aborted add should remove the seeded file")
	}
}

func TestAdd_AlreadyExists(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreWithEditor(dir, writeEditor("system: hi\n"))

	if err := s.Add("dup"); err != nil {
		t.Fatal(err)
	}
	if err := s.Add("dup"); err == nil {
		t.Error("expected error adding existing template")
	}
}

func TestAdd_InvalidTemplate(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreWithEditor(dir, writeEditor("model: gpt-4o\n"))

	err := s.Add("nosystem")
	if !errors.Is(err, core.ErrTemplateInvalid) {
		t.Fatalf("expected TEMPLATE_INVALID, got %v", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := NewStore(t.TempDir())

	_, err := s.Get("ghost")
	if !errors.Is(err, core.ErrTemplateNotFound) {
		t.Fatalf("expected TEMPLATE_NOT_FOUND, got %v", err)
	}
}

func TestGet_Defaults(t *testing.T) {
	dir := t.TempDir()
	content := `system: "Translate to French."
model: 4o
emoji: true
`
	if err := os.WriteFile(filepath.Join(dir, "french.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(dir).Get("french")
	if err != nil {
		t.Fatal(err)
	}
	if got.Model != "4o" {
		t.Errorf("expected model 4o, got %q", got.Model)
	}
	if !got.Emoji {
		t.Error("expected emoji default to be set")
	}
}

func TestList_SortedNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zsh.yaml", "cook.yaml", "bash.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("system: x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// Non-template files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	names, err := NewStore(dir).List()
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"bash", "cook", "zsh"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestList_MissingDir(t *testing.T) {
	names, err := NewStore(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}

func TestEdit_ValidatesResult(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "t.yaml"), []byte("system: ok\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStoreWithEditor(dir, writeEditor("system: \"\"\n"))
	err := s.Edit("t")
	if !errors.Is(err, core.ErrTemplateInvalid) {
		t.Fatalf("expected TEMPLATE_INVALID, got %v", err)
	}
}

func TestEdit_Unchanged(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "t.yaml"), []byte("system: ok\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStoreWithEditor(dir, noopEditor)
	if err := s.Edit("t"); !errors.Is(err, ErrUnchanged) {
		t.Fatalf("expected ErrUnchanged, got %v", err)
	}
}

func TestEdit_NotFound(t *testing.T) {
	s := NewStoreWithEditor(t.TempDir(), noopEditor)
	if err := s.Edit("ghost"); !errors.Is(err, core.ErrTemplateNotFound) {
		t.Fatalf("expected TEMPLATE_NOT_FOUND, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "t.yaml"), []byte("system: ok\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	if err := s.Remove("t"); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove("t"); !errors.Is(err, core.ErrTemplateNotFound) {
		t.Fatalf("expected TEMPLATE_NOT_FOUND on second remove, got %v", err)
	}
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "old.yaml"), []byte("system: ok\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(dir)
	if err := s.Rename("old", "new"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("new"); err != nil {
		t.Errorf("renamed template should be readable: %v", err)
	}
	if _, err := s.Get("old"); !errors.Is(err, core.ErrTemplateNotFound) {
		t.Error("old name should be gone")
	}
}

func TestPath_RejectsTraversal(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, name := range []string{"", "../evil", "a/b", `a\b`} {
		if _, err := s.Get(name); !errors.Is(err, core.ErrTemplateInvalid) {
			t.Errorf("Get(%q): expected TEMPLATE_INVALID, got %v", name, err)
		}
	}
}
