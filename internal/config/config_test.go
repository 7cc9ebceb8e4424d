package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MBhoomika/serene-ai/internal/models"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ServerURL != models.DefaultServerURL {
		t.Errorf("ServerURL = %q, want %q", cfg.ServerURL, models.DefaultServerURL)
	}
	if cfg.MarkdownStyle != "dark" {
		t.Errorf("MarkdownStyle = %q, want dark", cfg.MarkdownStyle)
	}
	if !cfg.SaveHistory {
		t.Error("SaveHistory should default to true")
	}
	if cfg.CopyToClipboard {
		t.Error("CopyToClipboard should default to false")
	}
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("GetConfigDir() returned relative path: %s", dir)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerURL != models.DefaultServerURL {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.ServerURL = "http://example.test:9999"
	cfg.Username = "bhoomi"
	cfg.CopyToClipboard = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() returned error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if loaded.ServerURL != cfg.ServerURL {
		t.Errorf("ServerURL = %q, want %q", loaded.ServerURL, cfg.ServerURL)
	}
	if loaded.Username != "bhoomi" || !loaded.CopyToClipboard {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadEmptyServerURLFallsBack(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".serene")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"server_url":""}`), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.ServerURL != models.DefaultServerURL {
		t.Errorf("empty server_url not replaced with default: %q", cfg.ServerURL)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if tok, err := LoadToken(); err != nil || tok != "" {
		t.Fatalf("LoadToken() on fresh home = %q, %v", tok, err)
	}

	if err := SaveToken("tok-abc"); err != nil {
		t.Fatalf("SaveToken() returned error: %v", err)
	}

	tok, err := LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() returned error: %v", err)
	}
	if tok != "tok-abc" {
		t.Errorf("LoadToken() = %q, want tok-abc", tok)
	}

	if err := ClearToken(); err != nil {
		t.Fatalf("ClearToken() returned error: %v", err)
	}
	if tok, _ := LoadToken(); tok != "" {
		t.Errorf("token survived ClearToken: %q", tok)
	}

	// Clearing twice is fine
	if err := ClearToken(); err != nil {
		t.Errorf("second ClearToken() returned error: %v", err)
	}
}
