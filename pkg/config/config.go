package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the Synexa API endpoint
const DefaultBaseURL = "https://api.synexa.ai/v1"

// APIKeyEnv is the environment variable holding the default API key
const APIKeyEnv = "SYNEXA_API_KEY"

// ErrMissingAPIKey is returned when no API key can be resolved
var ErrMissingAPIKey = errors.New("API key must be provided or set in " + APIKeyEnv + " environment variable")

// Config holds the configuration for a Synexa client
type Config struct {
	// Required
	APIKey string

	// Optional with defaults
	BaseURL     string
	HTTPTimeout time.Duration
	Timeouts    TimeoutConfig
	Debug       bool
}

// LoadConfig loads configuration from environment variables. An explicit
// apiKey wins over SYNEXA_API_KEY. A .env file in the working directory
// or its parent is read first if present.
func LoadConfig(apiKey string) (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		APIKey:      apiKey,
		BaseURL:     DefaultBaseURL,
		HTTPTimeout: 60 * time.Second,
		Timeouts:    LoadTimeouts(),
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv(APIKeyEnv)
	}
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if baseURL := os.Getenv("SYNEXA_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	if timeout := os.Getenv("SYNEXA_HTTP_TIMEOUT_SECONDS"); timeout != "" {
		val, err := strconv.Atoi(timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNEXA_HTTP_TIMEOUT_SECONDS: %w", err)
		}
		cfg.HTTPTimeout = time.Duration(val) * time.Second
	}

	if debug := os.Getenv("SYNEXA_DEBUG"); debug != "" {
		val, err := strconv.ParseBool(debug)
		if err != nil {
			return nil, fmt.Errorf("invalid SYNEXA_DEBUG: %w", err)
		}
		cfg.Debug = val
	}

	return cfg, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env"))
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP timeout must not be negative")
	}
	if c.Timeouts.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}
	if c.Timeouts.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.Timeouts.StreamInterval <= 0 {
		return fmt.Errorf("stream interval must be positive")
	}
	return nil
}
