package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/synexa-ai/synexa-go/pkg/client"
	"github.com/synexa-ai/synexa-go/pkg/types"
)

// 1x1 transparent PNG
const pngBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func succeeded(outputs ...string) types.Prediction {
	return types.Prediction{
		ID:     "pred-1",
		Model:  types.ModelFluxSchnell,
		Status: types.StatusSucceeded,
		Input:  map[string]interface{}{"prompt": "a cat"},
		Output: outputs,
	}
}

func TestSaveOutputs(t *testing.T) {
	png, _ := base64.StdEncoding.DecodeString(pngBase64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(png)
	}))
	defer server.Close()

	store := NewStorage(t.TempDir())
	pred := succeeded(server.URL+"/0", "data:image/png;base64,"+pngBase64)
	outputs := []*client.FileOutput{
		client.NewFileOutput(pred.Output[0], nil),
		client.NewFileOutput(pred.Output[1], nil),
	}

	metadata, err := store.SaveOutputs(context.Background(), pred, outputs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if metadata.PredictionID != "pred-1" {
		t.Errorf("expected prediction id pred-1, got %s", metadata.PredictionID)
	}
	if len(metadata.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(metadata.Files))
	}
	for i, f := range metadata.Files {
		if f.ContentType != "image/png" {
			t.Errorf("file %d: expected image/png, got %s", i, f.ContentType)
		}
		data, err := os.ReadFile(store.GetPath(metadata.ID, f.Filename))
		if err != nil {
			t.Fatalf("file %d: %v", i, err)
		}
		if !bytes.Equal(data, png) {
			t.Errorf("file %d: contents differ", i)
		}
	}
	if metadata.Files[0].Filename != "output_0.png" {
		t.Errorf("expected output_0.png, got %s", metadata.Files[0].Filename)
	}

	loaded, err := store.LoadMetadata(metadata.ID)
	if err != nil {
		t.Fatalf("failed to load metadata: %v", err)
	}
	if loaded.Model != types.ModelFluxSchnell || loaded.Parameters["prompt"] != "a cat" {
		t.Errorf("unexpected loaded metadata %+v", loaded)
	}
	if loaded.Files[1].URL != pred.Output[1] {
		t.Errorf("expected url preserved, got %s", loaded.Files[1].URL)
	}
}

func TestSaveOutputs_NotSucceeded(t *testing.T) {
	store := NewStorage(t.TempDir())
	pred := types.Prediction{ID: "pred-1", Status: types.StatusRunning}

	if _, err := store.SaveOutputs(context.Background(), pred, nil); err == nil {
		t.Fatal("expected error for running prediction")
	}
}

func TestSaveOutputs_DownloadError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := NewStorage(t.TempDir())
	pred := succeeded(server.URL)

	_, err := store.SaveOutputs(context.Background(), pred, []*client.FileOutput{client.NewFileOutput(server.URL, nil)})

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *client.APIError, got %v", err)
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()
	store := NewStorage(root)

	for _, id := range []string{"b", "a"} {
		if err := os.MkdirAll(store.GetPath(id, ""), 0755); err != nil {
			t.Fatal(err)
		}
	}
	older := &OutputMetadata{ID: "b", PredictionID: "p-old", Timestamp: time.Now().Add(-time.Hour)}
	newer := &OutputMetadata{ID: "a", PredictionID: "p-new", Timestamp: time.Now()}
	if err := store.SaveMetadata("b", older); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveMetadata("a", newer); err != nil {
		t.Fatal(err)
	}
	// directory without metadata is skipped
	os.MkdirAll(store.GetPath("junk", ""), 0755)

	all, err := store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].PredictionID != "p-old" || all[1].PredictionID != "p-new" {
		t.Errorf("expected oldest first, got %s, %s", all[0].PredictionID, all[1].PredictionID)
	}
	if all[0].Version != "1.0" {
		t.Errorf("expected default version, got %q", all[0].Version)
	}
}

func TestList_MissingRoot(t *testing.T) {
	store := NewStorage(t.TempDir() + "/does-not-exist")
	all, err := store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty list, got %v", all)
	}
}
