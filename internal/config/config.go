// Package config handles configuration and credential loading for geminichat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/models"
)

// Environment variables read by LoadConfig and APIKey
const (
	EnvHome       = "GEMINICHAT_HOME"
	EnvModel      = "GEMINICHAT_MODEL"
	EnvAppearance = "GEMINICHAT_APPEARANCE"
	EnvLogLevel   = "GEMINICHAT_LOG_LEVEL"
	EnvAPIKey     = "GEMINI_API_KEY"
	// EnvAPIKeyLegacy is the name used by the browser build of the chatbot
	EnvAPIKeyLegacy = "VITE_GEMINI_API_KEY"
)

// Appearance values accepted in the config file
const (
	AppearanceLight = "light"
	AppearanceDark  = "dark"
	AppearanceAuto  = "auto"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	EnableEmoji      bool `toml:"enable_emoji" json:"enable_emoji"`
	PreserveNewLines bool `toml:"preserve_newlines" json:"preserve_newlines"`
	TableWrap        bool `toml:"table_wrap" json:"table_wrap"`
}

// Config represents the user configuration
type Config struct {
	Model string `toml:"model" json:"model"`
	// Appearance is "light", "dark" or "auto" (follow the terminal background)
	Appearance string `toml:"appearance" json:"appearance"`
	// RequestTimeoutSeconds bounds a single gateway call
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds" json:"request_timeout_seconds"`
	Temperature           float64 `toml:"temperature" json:"temperature"`
	MaxOutputTokens       int     `toml:"max_output_tokens" json:"max_output_tokens"`
	CopyToClipboard       bool    `toml:"copy_to_clipboard" json:"copy_to_clipboard"`

	// BaseURL overrides the Gemini API endpoint (proxies, local test servers)
	BaseURL string `toml:"base_url,omitempty" json:"base_url,omitempty"`

	LogLevel  string `toml:"log_level" json:"log_level"`
	LogFormat string `toml:"log_format" json:"log_format"` // "json" or "text"
	LogFile   string `toml:"log_file,omitempty" json:"log_file,omitempty"`

	Markdown MarkdownConfig `toml:"markdown" json:"markdown"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Model:                 models.DefaultModel,
		Appearance:            AppearanceAuto,
		RequestTimeoutSeconds: 60,
		Temperature:           1.0,
		MaxOutputTokens:       0,
		CopyToClipboard:       false,
		LogLevel:              "info",
		LogFormat:             "json",
		Markdown:              DefaultMarkdownConfig(),
	}
}

// Validate checks values that cannot be corrected silently
func (c Config) Validate() error {
	switch strings.ToLower(c.Appearance) {
	case AppearanceLight, AppearanceDark, AppearanceAuto:
	default:
		return fmt.Errorf("invalid appearance %q (expected light, dark or auto)", c.Appearance)
	}
	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request_timeout_seconds must not be negative")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2")
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("max_output_tokens must not be negative")
	}
	return nil
}

// GetConfigDir returns the configuration directory path.
// GEMINICHAT_HOME overrides the default ~/.geminichat.
func GetConfigDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvHome)); dir != "" {
		return filepath.Abs(dir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".geminichat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the JSON config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetTOMLConfigPath returns the path to the TOML config file
func GetTOMLConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// ActiveConfigPath returns the file LoadConfig reads: config.toml when it
// exists, otherwise config.json (which may not exist yet).
func ActiveConfigPath() (string, error) {
	tomlPath, err := GetTOMLConfigPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	return GetConfigPath()
}

// LoadConfig loads the configuration from disk and applies environment
// overrides. Missing files yield the defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	path, err := ActiveConfigPath()
	if err != nil {
		return cfg, err
	}

	cfg, err = loadFile(path, cfg)
	if err != nil {
		return DefaultConfig(), err
	}

	cfg = ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), apierrors.NewConfigError(path, err)
	}

	return cfg, nil
}

func loadFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, apierrors.NewConfigError(path, fmt.Errorf("failed to read config file: %w", err))
	}

	if filepath.Ext(path) == ".toml" {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, apierrors.NewConfigError(path, fmt.Errorf("failed to parse config file: %w", err))
		}
		return cfg, nil
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, apierrors.NewConfigError(path, fmt.Errorf("failed to parse config file: %w", err))
	}
	return cfg, nil
}

// ApplyEnv overrides config values with GEMINICHAT_* environment variables
func ApplyEnv(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvModel)); v != "" {
		cfg.Model = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAppearance)); v != "" {
		cfg.Appearance = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// SaveConfig saves the configuration to disk in the format of the active
// config file.
func SaveConfig(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	path, err := ActiveConfigPath()
	if err != nil {
		return err
	}

	var data []byte
	if filepath.Ext(path) == ".toml" {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		data = []byte(sb.String())
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ToJSON returns the configuration as indented JSON
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
