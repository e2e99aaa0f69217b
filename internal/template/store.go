// Package template manages the directory of reusable prompt templates.
// Each template is one YAML document holding a system prompt plus
// optional defaults, created and edited through an external editor.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/newthinker/lmt/internal/core"
)

// Template is a named bundle of a system prompt and default settings.
type Template struct {
	Name   string `yaml:"-"`
	System string `yaml:"system"`
	User   string `yaml:"user,omitempty"`
	Model  string `yaml:"model,omitempty"`
	Emoji  bool   `yaml:"emoji,omitempty"`
}

// ErrUnchanged reports that an editor session left the file as it was.
var ErrUnchanged = errors.New("no changes were made")

// starterContent seeds new template files with the documented schema.
const starterContent = `# lmt template
#
# system: the persona/system prompt sent with every request (required)
# user:   text prepended to the user prompt (optional)
# model:  default model name or alias (optional)
# emoji:  request emoji usage by default (optional)

system: ""
user: ""
model: ""
`

// EditFunc opens path in an interactive editor and blocks until the
// session ends. Injected so validation can be tested without a tty.
type EditFunc func(path string) error

// Store reads and writes templates under a single directory.
type Store struct {
	dir  string
	edit EditFunc
}

// NewStore creates a store that launches $VISUAL/$EDITOR for editing.
func NewStore(dir string) *Store {
	return NewStoreWithEditor(dir, launchEditor)
}

// NewStoreWithEditor creates a store with a custom editor function.
func NewStoreWithEditor(dir string, edit EditFunc) *Store {
	return &Store{dir: dir, edit: edit}
}

// List returns the template names in alphabetical order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Get reads and validates the named template.
func (s *Store) Get(name string) (*Template, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, core.WrapError(core.ErrTemplateNotFound, fmt.Errorf("template %q", name))
	}
	if err != nil {
		return nil, fmt.Errorf("reading template %q: %w", name, err)
	}

	return parse(name, data)
}

// Raw returns the file content of the named template verbatim.
func (s *Store) Raw(name string) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", core.WrapError(core.ErrTemplateNotFound, fmt.Errorf("template %q", name))
	}
	if err != nil {
		return "", fmt.Errorf("reading template %q: %w", name, err)
	}
	return string(data), nil
}

// Add creates a new template: the file is seeded with the starter
// schema, opened in the editor, then validated. An unchanged file
// aborts the add and is removed.
func (s *Store) Add(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("template %q already exists, use `lmt templates edit %s`", name, name)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating templates dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(starterContent), 0o644); err != nil {
		return fmt.Errorf("seeding template %q: %w", name, err)
	}

	if err := s.edit(path); err != nil {
		os.Remove(path)
		return fmt.Errorf("editor session: %w", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rereading template %q: %w", name, err)
	}
	if bytes.Equal(after, []byte(starterContent)) {
		os.Remove(path)
		return ErrUnchanged
	}

	_, err = parse(name, after)
	return err
}

// Edit opens an existing template in the editor and validates the
// result. Returns ErrUnchanged when the session made no edits.
func (s *Store) Edit(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	before, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return core.WrapError(core.ErrTemplateNotFound, fmt.Errorf("template %q", name))
	}
	if err != nil {
		return fmt.Errorf("reading template %q: %w", name, err)
	}

	if err := s.edit(path); err != nil {
		return fmt.Errorf("editor session: %w", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("rereading template %q: %w", name, err)
	}
	if bytes.Equal(before, after) {
		return ErrUnchanged
	}

	_, err = parse(name, after)
	return err
}

// Remove deletes the named template.
func (s *Store) Remove(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return core.WrapError(core.ErrTemplateNotFound, fmt.Errorf("template %q", name))
	}
	return err
}

// Rename moves a template to a new name.
func (s *Store) Rename(oldName, newName string) error {
	oldPath, err := s.path(oldName)
	if err != nil {
		return err
	}
	newPath, err := s.path(newName)
	if err != nil {
		return err
	}

	if _, err := os.Stat(oldPath); os.IsNotExist(err) {
		return core.WrapError(core.ErrTemplateNotFound, fmt.Errorf("template %q", oldName))
	}
	if _, err := os.Stat(newPath); err == nil {
		return fmt.Errorf("template %q already exists", newName)
	}
	return os.Rename(oldPath, newPath)
}

func (s *Store) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", core.WrapError(core.ErrTemplateInvalid,
			fmt.Errorf("invalid template name %q", name))
	}
	return filepath.Join(s.dir, name+".yaml"), nil
}

func parse(name string, data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, core.WrapError(core.ErrTemplateInvalid, err)
	}
	if strings.TrimSpace(t.System) == "" {
		return nil, core.WrapError(core.ErrTemplateInvalid,
			fmt.Errorf("template %q has no system prompt", name))
	}
	t.Name = name
	return &t, nil
}

func launchEditor(path string) error {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	// $EDITOR may carry flags, e.g. "code --wait".
	parts := strings.Fields(editor)
	args := append(parts[1:], path)

	cmd := exec.Command(parts[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
