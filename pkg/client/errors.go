package client

import (
	"fmt"
	"time"

	"github.com/synexa-ai/synexa-go/pkg/types"
)

// ConfigError is returned when a client cannot be constructed, most often
// because no API key could be resolved.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// APIError is a transport error: an HTTP call returned a non-success status.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d) on %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

// ModelError is returned when a prediction ends in the failed state.
// Prediction holds the last snapshot fetched from the API.
type ModelError struct {
	Message    string
	Prediction types.Prediction
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("prediction failed: %s", e.Message)
}

func newModelError(p types.Prediction) *ModelError {
	return &ModelError{Message: p.Error, Prediction: p}
}

// TimeoutError is returned when a prediction is still in flight after the
// wait timeout. The remote prediction keeps running.
type TimeoutError struct {
	Timeout    time.Duration
	Prediction types.Prediction
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("prediction %s did not complete within %v", e.Prediction.ID, e.Timeout)
}
