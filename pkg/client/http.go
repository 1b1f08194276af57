package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/synexa-ai/synexa-go/pkg/logger"
	"github.com/synexa-ai/synexa-go/pkg/types"
)

const (
	apiKeyHeader = "x-api-key"

	// bodies above this size are elided from debug logs
	maxLoggedBody = 1000
)

// HTTPClient handles communication with the Synexa API
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPClient creates a new Synexa API client
func NewHTTPClient(apiKey, baseURL string, httpClient *http.Client, log *slog.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = logger.Discard()
	}
	return &HTTPClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log,
	}
}

// CreatePrediction creates a new prediction
func (c *HTTPClient) CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*types.Prediction, error) {
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if input == nil {
		input = map[string]interface{}{}
	}

	body, err := json.Marshal(types.PredictionRequest{
		Model: model,
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.do(ctx, http.MethodPost, c.baseURL+"/predictions", body)
}

// GetPrediction fetches the current state of a prediction
func (c *HTTPClient) GetPrediction(ctx context.Context, predictionID string) (*types.Prediction, error) {
	if predictionID == "" {
		return nil, fmt.Errorf("prediction ID is required")
	}
	return c.do(ctx, http.MethodGet, c.baseURL+"/predictions/"+url.PathEscape(predictionID), nil)
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body []byte) (*types.Prediction, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	c.logger.Debug("sending request",
		"method", method,
		"url", endpoint,
		"body", logger.Truncate(body, maxLoggedBody))

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("received response",
		"status", resp.StatusCode,
		"body", logger.Truncate(respBody, maxLoggedBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	var prediction types.Prediction
	if err := json.Unmarshal(respBody, &prediction); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if prediction.ID == "" || prediction.Status == "" {
		return nil, fmt.Errorf("response is missing prediction id or status: %s", logger.Truncate(respBody, maxLoggedBody))
	}

	return &prediction, nil
}
