package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/dashboard"
	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/logger"
	"github.com/revisitly/revisitly/internal/session"
)

func newListServer(t *testing.T, calls *atomic.Int32, bookmarks []map[string]any) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "bookmarks": bookmarks})
	}))
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second, nil, logger.Nop())
}

func signedInGate(t *testing.T) *session.Gate {
	t.Helper()
	gate := session.New(nil, nil, logger.Nop())
	gate.Init(context.Background())
	if !gate.Establish(context.Background(), &domain.User{Token: "tok", Email: "ana@example.com"}, gate.Epoch()) {
		t.Fatal("failed to establish test session")
	}
	return gate
}

func TestRefreshReplacesView(t *testing.T) {
	var calls atomic.Int32
	client := newListServer(t, &calls, []map[string]any{
		{"id": "a", "url": "https://a.example.com"},
		{"id": "b", "url": "https://b.example.com"},
	})
	view := dashboard.NewView()
	view.ReplaceAll([]*domain.Bookmark{{ID: "stale", URL: "https://stale.example.com"}})

	lr := NewListRefresher(client, view, nil, signedInGate(t), logger.Nop(), time.Hour, nil)

	if err := lr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1", calls.Load())
	}
	if view.Count() != 2 {
		t.Errorf("view count = %d, want 2", view.Count())
	}
	if _, ok := view.Get("stale"); ok {
		t.Error("stale bookmark survived a full refresh")
	}
}

func TestRefreshSkippedWhenSignedOut(t *testing.T) {
	var calls atomic.Int32
	client := newListServer(t, &calls, nil)
	view := dashboard.NewView()

	gate := session.New(nil, nil, logger.Nop())
	gate.Init(context.Background())

	lr := NewListRefresher(client, view, nil, gate, logger.Nop(), time.Hour, nil)

	if err := lr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server calls = %d, a signed-out refresh must not hit the network", calls.Load())
	}
}

func TestRefreshSkippedWhileInFlight(t *testing.T) {
	var calls atomic.Int32
	client := newListServer(t, &calls, nil)
	view := dashboard.NewView()

	lr := NewListRefresher(client, view, nil, signedInGate(t), logger.Nop(), time.Hour, nil)
	lr.busy.Store(true)

	if err := lr.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server calls = %d, an overlapping refresh must be skipped", calls.Load())
	}
}

func TestManualTriggerCausesRefresh(t *testing.T) {
	var calls atomic.Int32
	client := newListServer(t, &calls, nil)
	view := dashboard.NewView()
	trigger := make(chan struct{}, 1)

	lr := NewListRefresher(client, view, nil, signedInGate(t), logger.Nop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := lr.Start(ctx); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer lr.Stop()

	after := calls.Load()
	trigger <- struct{}{}

	deadline := time.After(2 * time.Second)
	for calls.Load() == after {
		select {
		case <-deadline:
			t.Fatal("manual trigger did not cause a refresh")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
