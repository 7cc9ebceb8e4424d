// Package config handles client configuration and session persistence for
// serene. Everything lives under ~/.serene.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MBhoomika/serene-ai/internal/models"
)

// Config represents the user configuration
type Config struct {
	// ServerURL is the base URL of the Serene backend.
	ServerURL string `json:"server_url"`
	// Username of the last successful login, shown in the widget header.
	Username string `json:"username,omitempty"`
	// CopyToClipboard copies the last reply to the clipboard after each
	// one-shot query.
	CopyToClipboard bool `json:"copy_to_clipboard"`
	// MarkdownStyle is the glamour style for rendered replies: "dark",
	// "light", or "auto".
	MarkdownStyle string `json:"markdown_style"`
	// SaveHistory keeps a local transcript of every conversation in
	// addition to the server-side history.
	SaveHistory bool `json:"save_history"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ServerURL:     models.DefaultServerURL,
		MarkdownStyle: "dark",
		SaveHistory:   true,
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".serene"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory holds the session token
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk, falling back to defaults when the
// file doesn't exist yet.
func Load() (Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = models.DefaultServerURL
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
