// Package config reads and writes the lmt configuration directory:
// config.yaml for settings and credentials.yaml for API keys. Every
// function takes the directory explicitly so tests can point it at a
// temporary location.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/newthinker/lmt/internal/core"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	settingsFile    = "config.yaml"
	credentialsFile = "credentials.yaml"
	templatesDir    = "templates"
)

// Settings holds the persisted configuration.
type Settings struct {
	Provider        string       `mapstructure:"provider" yaml:"provider"`
	DefaultModel    string       `mapstructure:"default_model" yaml:"default_model"`
	CodeBlockTheme  string       `mapstructure:"code_block_theme" yaml:"code_block_theme"`
	InlineCodeTheme string       `mapstructure:"inline_code_theme" yaml:"inline_code_theme"`
	Ollama          OllamaConfig `mapstructure:"ollama" yaml:"ollama"`
}

// OllamaConfig holds local Ollama settings.
type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

// Defaults returns the settings written on first run.
func Defaults() *Settings {
	return &Settings{
		Provider:        "openai",
		DefaultModel:    "",
		CodeBlockTheme:  "monokai",
		InlineCodeTheme: "blue",
		Ollama: OllamaConfig{
			Endpoint: "http://localhost:11434",
		},
	}
}

// Dir resolves the configuration directory: the explicit argument wins,
// then LMT_CONFIG_DIR, then ~/.config/lmt.
func Dir(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv("LMT_CONFIG_DIR"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lmt"), nil
}

// TemplatesDir returns the template directory under dir, creating it
// if necessary.
func TemplatesDir(dir string) (string, error) {
	path := filepath.Join(dir, templatesDir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", fmt.Errorf("creating templates dir: %w", err)
	}
	return path, nil
}

// Load reads config.yaml from dir. A missing file is created with
// defaults; a present but unparseable file fails with CONFIG_CORRUPT
// rather than silently falling back.
func Load(dir string) (*Settings, error) {
	path := filepath.Join(dir, settingsFile)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Defaults()
		if err := Save(dir, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.SetEnvPrefix("LMT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("provider", "openai")
	v.SetDefault("code_block_theme", "monokai")
	v.SetDefault("inline_code_theme", "blue")
	v.SetDefault("ollama.endpoint", "http://localhost:11434")

	if err := v.ReadInConfig(); err != nil {
		return nil, core.WrapError(core.ErrConfigCorrupt, err)
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, core.WrapError(core.ErrConfigCorrupt, err)
	}

	return &cfg, nil
}

// Save writes config.yaml atomically: marshal to a temp file in the
// same directory, then rename over the destination.
func Save(dir string, cfg *Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return atomicWrite(filepath.Join(dir, settingsFile), data, 0o644)
}

// envKeyVars maps providers to the conventional environment variables
// that override the stored key.
var envKeyVars = map[string]string{
	"openai": "OPENAI_API_KEY",
	"claude": "ANTHROPIC_API_KEY",
}

// APIKey returns the key for provider, preferring the conventional
// environment variable over the credentials file. Fails with
// AUTH_MISSING when neither is set.
func APIKey(dir, provider string) (string, error) {
	if env, ok := envKeyVars[provider]; ok {
		if key := strings.TrimSpace(os.Getenv(env)); key != "" {
			return key, nil
		}
	}

	keys, err := readCredentials(dir)
	if err != nil {
		return "", err
	}
	key := strings.TrimSpace(keys[provider])
	if key == "" {
		return "", core.WrapError(core.ErrAuthMissing,
			fmt.Errorf("no %s key stored, run `lmt key set`", provider))
	}
	return key, nil
}

// HasAPIKey reports whether a key is stored for provider, ignoring
// environment overrides.
func HasAPIKey(dir, provider string) bool {
	keys, err := readCredentials(dir)
	if err != nil {
		return false
	}
	return strings.TrimSpace(keys[provider]) != ""
}

// SetAPIKey persists the key for provider with restrictive permissions.
func SetAPIKey(dir, provider, key string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	keys, err := readCredentials(dir)
	if err != nil {
		return err
	}
	if keys == nil {
		keys = make(map[string]string)
	}
	keys[provider] = strings.TrimSpace(key)

	data, err := yaml.Marshal(keys)
	if err != nil {
		return fmt.Errorf("marshaling credentials: %w", err)
	}
	return atomicWrite(filepath.Join(dir, credentialsFile), data, 0o600)
}

func readCredentials(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, credentialsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	keys := make(map[string]string)
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, core.WrapError(core.ErrConfigCorrupt, err)
	}
	return keys, nil
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
