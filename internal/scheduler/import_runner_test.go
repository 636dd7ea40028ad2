package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/form"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/timecodec"
)

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}
	return path
}

func newImportController(t *testing.T, calls *atomic.Int32) *form.Controller {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":  true,
			"bookmark": map[string]any{"id": "bm1"},
		})
	}))
	t.Cleanup(srv.Close)
	client := api.New(srv.URL, 5*time.Second, nil, logger.Nop())
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	codec := timecodec.New(time.UTC).WithClock(func() time.Time { return now })
	return form.NewController(client, codec, logger.Nop())
}

func TestImportRunCreatesEachEntry(t *testing.T) {
	path := writeImportFile(t, `bookmarks:
  - url: https://go.dev/blog/generics
    title: Go generics
    tags: [go, reading]
  - url: https://example.com/recipe
    title: Weekend recipe
    remindAt: "2026-06-02T09:00"
`)

	var calls atomic.Int32
	runner := NewImportRunner(path, newImportController(t, &calls), logger.Nop(), nil)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("create calls = %d, want 2", calls.Load())
	}
}

func TestImportRunSkipsInvalidEntries(t *testing.T) {
	// The second entry's reminder is in the past relative to the fixed
	// test clock, so validation rejects it and the import moves on.
	path := writeImportFile(t, `bookmarks:
  - url: https://example.com/good
  - url: https://example.com/stale
    remindAt: "2020-01-01T00:00"
`)

	var calls atomic.Int32
	runner := NewImportRunner(path, newImportController(t, &calls), logger.Nop(), nil)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("create calls = %d, want 1 with the invalid entry skipped", calls.Load())
	}
}

func TestImportRunMissingFileFails(t *testing.T) {
	var calls atomic.Int32
	runner := NewImportRunner(
		filepath.Join(t.TempDir(), "missing.yaml"),
		newImportController(t, &calls),
		logger.Nop(),
		nil,
	)

	if err := runner.Run(context.Background()); err == nil {
		t.Fatal("Run() should fail when the import file is missing")
	}
	if calls.Load() != 0 {
		t.Errorf("create calls = %d, want 0", calls.Load())
	}
}
