package config

import (
	"os"
	"strconv"
	"time"
)

// TimeoutConfig holds the polling cadence and default wait
type TimeoutConfig struct {
	// WaitTimeout is how long Wait and Run block when the caller gives no timeout
	WaitTimeout time.Duration

	// PollInterval is how often Wait and RunAsync reload the prediction
	PollInterval time.Duration

	// StreamInterval is how often Stream reloads the prediction
	StreamInterval time.Duration
}

// DefaultTimeouts returns the default timeout configuration
func DefaultTimeouts() TimeoutConfig {
	return TimeoutConfig{
		WaitTimeout:    60 * time.Second,
		PollInterval:   1 * time.Second,
		StreamInterval: 100 * time.Millisecond,
	}
}

// LoadTimeouts loads timeout configuration from environment variables
func LoadTimeouts() TimeoutConfig {
	config := DefaultTimeouts()

	if val := os.Getenv("SYNEXA_WAIT_TIMEOUT_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil && seconds > 0 {
			config.WaitTimeout = time.Duration(seconds) * time.Second
		}
	}

	if val := os.Getenv("SYNEXA_POLL_INTERVAL_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			config.PollInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if val := os.Getenv("SYNEXA_STREAM_INTERVAL_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			config.StreamInterval = time.Duration(ms) * time.Millisecond
		}
	}

	return config
}

// TestTimeouts returns timeout configuration suitable for testing
func TestTimeouts() TimeoutConfig {
	return TimeoutConfig{
		WaitTimeout:    2 * time.Second,
		PollInterval:   20 * time.Millisecond,
		StreamInterval: 10 * time.Millisecond,
	}
}
