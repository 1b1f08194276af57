package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/synexa-ai/synexa-go/pkg/types"
)

// MockClient is a mock implementation of the API interface for testing
type MockClient struct {
	// Control behavior
	ResponseDelay time.Duration // How long predictions take to succeed
	PendingFor    time.Duration // How long predictions report pending before running
	ShouldFail    bool          // Whether operations should fail
	FailAfter     time.Duration // Fail predictions after this duration
	FailMessage   string        // Custom failure message
	Logs          string        // Logs reported while running
	Output        []string      // Output reported on success

	// Track calls for assertions
	CreateCalls []CreateCall
	GetCalls    []string

	// Predictions state
	predictions map[string]*MockPrediction
	mu          sync.Mutex
}

// CreateCall records a call to CreatePrediction
type CreateCall struct {
	Model     string
	Input     map[string]interface{}
	Timestamp time.Time
}

// MockPrediction represents a mock prediction
type MockPrediction struct {
	ID         string
	Model      string
	Input      map[string]interface{}
	StartTime  time.Time
	CompleteAt time.Time
	Status     types.Status // forced status, empty means derive from time
	Error      string
}

// NewMockClient creates a new mock client
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseDelay: 5 * time.Second, // Default 5 second completion
		// 1x1 transparent PNG
		Output:      []string{"data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="},
		predictions: make(map[string]*MockPrediction),
		CreateCalls: []CreateCall{},
		GetCalls:    []string{},
	}
}

// CreatePrediction creates a mock prediction
func (m *MockClient) CreatePrediction(ctx context.Context, model string, input map[string]interface{}) (*types.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateCalls = append(m.CreateCalls, CreateCall{
		Model:     model,
		Input:     input,
		Timestamp: time.Now(),
	})

	if m.ShouldFail && m.FailAfter == 0 {
		if m.FailMessage != "" {
			return nil, &APIError{Method: "POST", URL: "/predictions", StatusCode: 500, Body: m.FailMessage}
		}
		return nil, &APIError{Method: "POST", URL: "/predictions", StatusCode: 500, Body: "mock client configured to fail"}
	}

	predID := fmt.Sprintf("mock-pred-%d", len(m.predictions)+1)
	now := time.Now()
	m.predictions[predID] = &MockPrediction{
		ID:         predID,
		Model:      model,
		Input:      input,
		StartTime:  now,
		CompleteAt: now.Add(m.ResponseDelay),
	}

	return &types.Prediction{
		ID:        predID,
		Model:     model,
		Status:    types.StatusPending,
		Input:     input,
		CreatedAt: now.Format(time.RFC3339),
	}, nil
}

// GetPrediction gets the status of a mock prediction
func (m *MockClient) GetPrediction(ctx context.Context, predictionID string) (*types.Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetCalls = append(m.GetCalls, predictionID)

	pred, exists := m.predictions[predictionID]
	if !exists {
		return nil, &APIError{Method: "GET", URL: "/predictions/" + predictionID, StatusCode: 404, Body: "prediction not found"}
	}

	result := &types.Prediction{
		ID:        predictionID,
		Model:     pred.Model,
		Input:     pred.Input,
		CreatedAt: pred.StartTime.Format(time.RFC3339),
	}

	elapsed := time.Since(pred.StartTime)
	switch {
	case pred.Status == types.StatusFailed:
		result.Status = types.StatusFailed
		result.Error = pred.Error
	case pred.Status == types.StatusSucceeded:
		result.Status = types.StatusSucceeded
		result.Output = m.Output
	case m.ShouldFail && m.FailAfter > 0 && elapsed >= m.FailAfter:
		result.Status = types.StatusFailed
		result.Error = m.FailMessage
		if result.Error == "" {
			result.Error = "mock failure"
		}
	case !time.Now().Before(pred.CompleteAt):
		result.Status = types.StatusSucceeded
		result.Output = m.Output
	case elapsed < m.PendingFor:
		result.Status = types.StatusPending
	default:
		result.Status = types.StatusRunning
		result.Logs = m.Logs
	}

	return result, nil
}

// Helper methods for testing

// SetPredictionComplete marks a prediction as complete immediately
func (m *MockClient) SetPredictionComplete(predictionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pred, exists := m.predictions[predictionID]; exists {
		pred.Status = types.StatusSucceeded
	}
}

// SetPredictionFailed marks a prediction as failed
func (m *MockClient) SetPredictionFailed(predictionID string, errorMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pred, exists := m.predictions[predictionID]; exists {
		pred.Status = types.StatusFailed
		pred.Error = errorMsg
	}
}

// SetResponseDelay changes the response delay for future predictions
func (m *MockClient) SetResponseDelay(delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseDelay = delay
}

// GetCallCount returns how many times GetPrediction has been called
func (m *MockClient) GetCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.GetCalls)
}

// CreateCallCount returns how many times CreatePrediction has been called
func (m *MockClient) CreateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CreateCalls)
}

// Reset clears all state for a fresh test
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.predictions = make(map[string]*MockPrediction)
	m.CreateCalls = []CreateCall{}
	m.GetCalls = []string{}
	m.ShouldFail = false
	m.FailAfter = 0
	m.FailMessage = ""
}
