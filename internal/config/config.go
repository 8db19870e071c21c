// Package config handles persistent user configuration for claudechat.
// Configuration lives in config.json under the config directory; the API
// credential itself is kept in the session database, not here.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LoggingConfig controls the categorized debug logger.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"` // debug, info, warn, error
}

// Config holds user preferences
type Config struct {
	Theme        string        `json:"theme"` // "light" or "dark"
	Model        string        `json:"model,omitempty"`
	BaseURL      string        `json:"base_url,omitempty"`
	MaxTokens    int           `json:"max_tokens,omitempty"`
	SystemPrompt string        `json:"system_prompt,omitempty"`
	Logging      LoggingConfig `json:"logging,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Theme: "dark",
	}
}

// Dir returns the directory where config and the session database are stored
func Dir() (string, error) {
	// Prefer project-local .claudechat directory if present
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".claudechat")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	// Fallback to home-level config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claudechat"), nil
}

// File returns the full path to the config file
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DBPath returns the full path to the session database
func DBPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// Load reads the configuration from disk
func Load() (Config, error) {
	path, err := File()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	if cfg.Theme == "" {
		cfg.Theme = "dark"
	}

	return cfg, nil
}

// Save writes the configuration to disk
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := File()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
