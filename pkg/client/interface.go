package client

import (
	"context"

	"github.com/synexa-ai/synexa-go/pkg/types"
)

// API defines the raw calls made against the Synexa predictions endpoint
type API interface {
	// CreatePrediction creates a new prediction
	CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*types.Prediction, error)

	// GetPrediction fetches the current state of a prediction
	GetPrediction(ctx context.Context, predictionID string) (*types.Prediction, error)
}

// Ensure both implementations satisfy API
var (
	_ API = (*HTTPClient)(nil)
	_ API = (*MockClient)(nil)
)
