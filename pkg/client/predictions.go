package client

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/synexa-ai/synexa-go/pkg/config"
)

// Predictions submits predictions and hands back handles to them
type Predictions struct {
	api      API
	timeouts config.TimeoutConfig
	logger   *slog.Logger
}

// Create submits a prediction and returns its handle without waiting
func (s *Predictions) Create(ctx context.Context, model string, input map[string]interface{}) (*Prediction, error) {
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}

	snapshot, err := s.api.CreatePrediction(ctx, model, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction: %w", err)
	}

	s.logger.Debug("created prediction", "prediction_id", snapshot.ID, "model", model, "status", snapshot.Status)

	return newPrediction(s.api, snapshot, s.timeouts, s.logger), nil
}

// CreateStream submits a prediction and returns its Stream sequence
func (s *Predictions) CreateStream(ctx context.Context, model string, input map[string]interface{}) (iter.Seq2[string, error], error) {
	prediction, err := s.Create(ctx, model, input)
	if err != nil {
		return nil, err
	}
	return prediction.Stream(ctx), nil
}

// Get fetches an existing prediction by ID, e.g. one started with NoWait
func (s *Predictions) Get(ctx context.Context, predictionID string) (*Prediction, error) {
	snapshot, err := s.api.GetPrediction(ctx, predictionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return newPrediction(s.api, snapshot, s.timeouts, s.logger), nil
}
