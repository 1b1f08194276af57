package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// FileOutput is a handle on a remote output artifact. Bytes are fetched on
// every Read; nothing is cached.
type FileOutput struct {
	URL string

	httpClient *http.Client
}

// NewFileOutput creates a handle for location. A nil httpClient uses http.DefaultClient.
func NewFileOutput(location string, httpClient *http.Client) *FileOutput {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FileOutput{URL: location, httpClient: httpClient}
}

func (f *FileOutput) String() string {
	return f.URL
}

// Read fetches the artifact. No API key is sent with the request.
// data: URLs are decoded in place.
func (f *FileOutput) Read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(f.URL, "data:") {
		return decodeDataURL(f.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download output: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		return nil, &APIError{
			Method:     http.MethodGet,
			URL:        f.URL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read output data: %w", err)
	}
	return data, nil
}

// Save reads the artifact and writes it to path
func (f *FileOutput) Save(ctx context.Context, path string) error {
	data, err := f.Read(ctx)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}
	return nil
}

func decodeDataURL(dataURL string) ([]byte, error) {
	parts := strings.SplitN(dataURL, ",", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid data URL")
	}
	if !strings.HasSuffix(parts[0], ";base64") {
		text, err := url.PathUnescape(parts[1])
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URL: %w", err)
		}
		return []byte(text), nil
	}
	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}
