package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The session token issued by /login is kept in its own file so that
// logging out can remove it without touching the rest of the config.

// GetTokenPath returns the path to the session token file
func GetTokenPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "session"), nil
}

// SaveToken persists the session token.
func SaveToken(token string) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := GetTokenPath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}
	return nil
}

// LoadToken reads the saved session token. An empty string means no session.
func LoadToken() (string, error) {
	path, err := GetTokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ClearToken removes the saved session token.
func ClearToken() error {
	path, err := GetTokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session token: %w", err)
	}
	return nil
}
