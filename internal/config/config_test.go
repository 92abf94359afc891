package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Fetch.Concurrency != 8 {
		t.Errorf("Fetch.Concurrency = %d, want 8", cfg.Fetch.Concurrency)
	}
	if cfg.FetchTimeout() != 15*time.Second {
		t.Errorf("FetchTimeout() = %v, want 15s", cfg.FetchTimeout())
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false by default")
	}
	if cfg.Groups.Fallback != "misc" {
		t.Errorf("Groups.Fallback = %q, want %q", cfg.Groups.Fallback, "misc")
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
fetch:
  timeout_seconds: 30
  concurrency: 4
  auth_token: sekrit
cache:
  enabled: true
  ttl_hours: 2
groups:
  fallback: other
  overrides:
    CA: Canada
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.FetchTimeout() != 30*time.Second {
		t.Errorf("FetchTimeout() = %v, want 30s", cfg.FetchTimeout())
	}
	if cfg.Fetch.Concurrency != 4 {
		t.Errorf("Fetch.Concurrency = %d, want 4", cfg.Fetch.Concurrency)
	}
	if cfg.Fetch.AuthToken != "sekrit" {
		t.Errorf("Fetch.AuthToken = %q", cfg.Fetch.AuthToken)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled = false, want true")
	}
	if cfg.CacheTTL() != 2*time.Hour {
		t.Errorf("CacheTTL() = %v, want 2h", cfg.CacheTTL())
	}
	if cfg.Groups.Overrides["CA"] != "Canada" {
		t.Errorf("Groups.Overrides = %v", cfg.Groups.Overrides)
	}
	// Unset keys keep their defaults
	if cfg.Fetch.MaxRetries != 3 {
		t.Errorf("Fetch.MaxRetries = %d, want default 3", cfg.Fetch.MaxRetries)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fetch: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for malformed YAML")
	}
}
