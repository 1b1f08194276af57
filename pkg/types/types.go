package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Model IDs commonly used with Synexa
const (
	ModelFluxSchnell = "black-forest-labs/flux-schnell"
	ModelFluxDev     = "black-forest-labs/flux-dev"
	ModelFluxPro     = "black-forest-labs/flux-1.1-pro"
)

// Status is the lifecycle state of a prediction
type Status string

// Prediction statuses from Synexa
const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether no further transitions happen after this status.
// Anything the API reports that we don't recognise counts as in-flight.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// PredictionRequest represents a request to create a prediction
type PredictionRequest struct {
	Model string                 `json:"model"`
	Input map[string]interface{} `json:"input"`
}

// Prediction is the last-known snapshot of a remote prediction.
// It is only ever replaced wholesale by a freshly decoded value.
type Prediction struct {
	ID          string                 `json:"id"`
	Model       string                 `json:"model,omitempty"`
	Status      Status                 `json:"status"`
	Input       map[string]interface{} `json:"input,omitempty"`
	Output      []string               `json:"output,omitempty"`
	Logs        string                 `json:"logs,omitempty"`
	Error       string                 `json:"error,omitempty"`
	CreatedAt   string                 `json:"created_at,omitempty"`
	StartedAt   string                 `json:"started_at,omitempty"`
	CompletedAt string                 `json:"completed_at,omitempty"`

	// Extra holds fields the client does not model explicitly.
	Extra map[string]json.RawMessage `json:"-"`
}

var knownFields = map[string]bool{
	"id": true, "model": true, "status": true, "input": true, "output": true,
	"logs": true, "error": true, "created_at": true, "started_at": true, "completed_at": true,
}

// UnmarshalJSON decodes a prediction response. The API is loose about the
// shape of output and error, so both are normalised here.
func (p *Prediction) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Prediction
	if err := decodeString(raw, "id", &out.ID); err != nil {
		return err
	}
	if err := decodeString(raw, "model", &out.Model); err != nil {
		return err
	}
	var status string
	if err := decodeString(raw, "status", &status); err != nil {
		return err
	}
	out.Status = Status(status)
	if err := decodeString(raw, "logs", &out.Logs); err != nil {
		return err
	}
	if err := decodeString(raw, "created_at", &out.CreatedAt); err != nil {
		return err
	}
	if err := decodeString(raw, "started_at", &out.StartedAt); err != nil {
		return err
	}
	if err := decodeString(raw, "completed_at", &out.CompletedAt); err != nil {
		return err
	}

	if v, ok := raw["input"]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &out.Input); err != nil {
			return fmt.Errorf("invalid input field: %w", err)
		}
	}

	output, err := parseOutput(raw["output"])
	if err != nil {
		return err
	}
	out.Output = output
	out.Error = parseError(raw["error"])

	for k, v := range raw {
		if knownFields[k] {
			continue
		}
		if out.Extra == nil {
			out.Extra = make(map[string]json.RawMessage)
		}
		out.Extra[k] = v
	}

	*p = out
	return nil
}

// MarshalJSON writes the prediction back out, including any extra fields.
func (p Prediction) MarshalJSON() ([]byte, error) {
	type plain Prediction
	base, err := json.Marshal(plain(p))
	if err != nil {
		return nil, err
	}
	if len(p.Extra) == 0 {
		return base, nil
	}

	merged := make(map[string]json.RawMessage, len(p.Extra)+len(knownFields))
	for k, v := range p.Extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func decodeString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok || isNull(v) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("invalid %s field: %w", key, err)
	}
	return nil
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || strings.TrimSpace(string(v)) == "null"
}

// parseOutput accepts a list of locators, a single locator, or null
func parseOutput(v json.RawMessage) ([]string, error) {
	if isNull(v) {
		return nil, nil
	}

	var list []string
	if err := json.Unmarshal(v, &list); err == nil {
		return list, nil
	}

	var single string
	if err := json.Unmarshal(v, &single); err == nil {
		return []string{single}, nil
	}

	return nil, fmt.Errorf("invalid output field: %s", string(v))
}

// parseError flattens the error field into text. Objects are searched for
// message or detail before falling back to the raw JSON.
func parseError(v json.RawMessage) string {
	if isNull(v) {
		return ""
	}

	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(v, &obj); err == nil {
		for _, key := range []string{"message", "detail"} {
			if msg, ok := obj[key]; ok {
				return fmt.Sprintf("%v", msg)
			}
		}
	}

	return string(v)
}
