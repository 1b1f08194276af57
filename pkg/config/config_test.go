package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		APIKeyEnv, "SYNEXA_BASE_URL", "SYNEXA_HTTP_TIMEOUT_SECONDS", "SYNEXA_DEBUG",
		"SYNEXA_WAIT_TIMEOUT_SECONDS", "SYNEXA_POLL_INTERVAL_MS", "SYNEXA_STREAM_INTERVAL_MS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfig_ExplicitKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(APIKeyEnv, "env-key")

	cfg, err := LoadConfig("explicit-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "explicit-key" {
		t.Errorf("expected explicit key to win, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("expected base URL %s, got %s", DefaultBaseURL, cfg.BaseURL)
	}
	if cfg.Timeouts != DefaultTimeouts() {
		t.Errorf("expected default timeouts, got %+v", cfg.Timeouts)
	}
}

func TestLoadConfig_EnvKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(APIKeyEnv, "env-key")
	t.Setenv("SYNEXA_BASE_URL", "http://localhost:9999/v1")
	t.Setenv("SYNEXA_DEBUG", "true")
	t.Setenv("SYNEXA_HTTP_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("expected env key, got %q", cfg.APIKey)
	}
	if cfg.BaseURL != "http://localhost:9999/v1" {
		t.Errorf("unexpected base URL %s", cfg.BaseURL)
	}
	if !cfg.Debug {
		t.Error("expected debug enabled")
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("expected 5s HTTP timeout, got %v", cfg.HTTPTimeout)
	}
}

func TestLoadConfig_MissingKey(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestLoadConfig_InvalidDebug(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNEXA_DEBUG", "maybe")

	if _, err := LoadConfig("key"); err == nil {
		t.Fatal("expected error for invalid SYNEXA_DEBUG")
	}
}

func TestLoadConfig_DotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SYNEXA_API_KEY=dotenv-key\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "dotenv-key" {
		t.Errorf("expected key from .env, got %q", cfg.APIKey)
	}
}

func TestLoadTimeouts_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNEXA_WAIT_TIMEOUT_SECONDS", "30")
	t.Setenv("SYNEXA_POLL_INTERVAL_MS", "500")
	t.Setenv("SYNEXA_STREAM_INTERVAL_MS", "not-a-number")

	got := LoadTimeouts()
	if got.WaitTimeout != 30*time.Second {
		t.Errorf("expected 30s wait timeout, got %v", got.WaitTimeout)
	}
	if got.PollInterval != 500*time.Millisecond {
		t.Errorf("expected 500ms poll interval, got %v", got.PollInterval)
	}
	if got.StreamInterval != DefaultTimeouts().StreamInterval {
		t.Errorf("expected default stream interval, got %v", got.StreamInterval)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		APIKey:   "key",
		BaseURL:  DefaultBaseURL,
		Timeouts: DefaultTimeouts(),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	noKey := valid
	noKey.APIKey = ""
	if err := noKey.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}

	badPoll := valid
	badPoll.Timeouts.PollInterval = 0
	if err := badPoll.Validate(); err == nil {
		t.Error("expected error for zero poll interval")
	}
}
