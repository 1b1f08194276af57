package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/synexa-ai/synexa-go/pkg/client"
	"github.com/synexa-ai/synexa-go/pkg/types"
)

const metadataFile = "metadata.yaml"

// OutputMetadata is written next to saved outputs
type OutputMetadata struct {
	Version      string                 `yaml:"version"`
	ID           string                 `yaml:"id"`
	PredictionID string                 `yaml:"prediction_id"`
	Model        string                 `yaml:"model,omitempty"`
	Timestamp    time.Time              `yaml:"timestamp"`
	Parameters   map[string]interface{} `yaml:"parameters,omitempty"`
	Files        []SavedFile            `yaml:"files"`
}

// SavedFile describes one downloaded output
type SavedFile struct {
	Filename    string `yaml:"filename"`
	URL         string `yaml:"url"`
	ContentType string `yaml:"content_type"`
	Size        int64  `yaml:"size"`
}

// Storage exports prediction outputs to a local directory. It is write-once:
// the client never reads outputs back from here.
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance
func NewStorage(rootPath string) *Storage {
	return &Storage{
		rootPath: rootPath,
	}
}

// GenerateID creates a fresh output directory and returns its ID
func (s *Storage) GenerateID() (string, error) {
	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Join(s.rootPath, id), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	return id, nil
}

// SaveOutputs downloads every output of a succeeded prediction into a new
// directory and records metadata.yaml beside them. File extensions come
// from the downloaded content.
func (s *Storage) SaveOutputs(ctx context.Context, prediction types.Prediction, outputs []*client.FileOutput) (*OutputMetadata, error) {
	if prediction.Status != types.StatusSucceeded {
		return nil, fmt.Errorf("prediction %s has not succeeded (status %s)", prediction.ID, prediction.Status)
	}

	id, err := s.GenerateID()
	if err != nil {
		return nil, err
	}

	metadata := &OutputMetadata{
		Version:      "1.0",
		ID:           id,
		PredictionID: prediction.ID,
		Model:        prediction.Model,
		Timestamp:    time.Now(),
		Parameters:   prediction.Input,
	}

	for i, out := range outputs {
		data, err := out.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read output %d: %w", i, err)
		}

		mtype := mimetype.Detect(data)
		filename := fmt.Sprintf("output_%d%s", i, mtype.Extension())
		if err := os.WriteFile(filepath.Join(s.rootPath, id, filename), data, 0644); err != nil {
			return nil, fmt.Errorf("failed to save output: %w", err)
		}

		metadata.Files = append(metadata.Files, SavedFile{
			Filename:    filename,
			URL:         out.URL,
			ContentType: mtype.String(),
			Size:        int64(len(data)),
		})
	}

	if err := s.SaveMetadata(id, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// SaveMetadata saves metadata for an output directory
func (s *Storage) SaveMetadata(id string, metadata *OutputMetadata) error {
	if metadata.Version == "" {
		metadata.Version = "1.0"
	}
	if metadata.Timestamp.IsZero() {
		metadata.Timestamp = time.Now()
	}

	data, err := yaml.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(filepath.Join(s.rootPath, id, metadataFile), data, 0644); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}

// LoadMetadata loads metadata for an output directory
func (s *Storage) LoadMetadata(id string) (*OutputMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.rootPath, id, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata OutputMetadata
	if err := yaml.Unmarshal(data, &metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	return &metadata, nil
}

// List returns the metadata of every saved output directory, oldest first
func (s *Storage) List() ([]OutputMetadata, error) {
	entries, err := os.ReadDir(s.rootPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []OutputMetadata{}, nil
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var all []OutputMetadata
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		metadata, err := s.LoadMetadata(entry.Name())
		if err != nil {
			// Skip entries without valid metadata
			continue
		}
		all = append(all, *metadata)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.Before(all[j].Timestamp)
	})
	return all, nil
}

// GetPath returns the full path to a saved file
func (s *Storage) GetPath(id string, filename string) string {
	return filepath.Join(s.rootPath, id, filename)
}
