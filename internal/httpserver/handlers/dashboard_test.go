package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/revisitly/revisitly/internal/dashboard"
	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
)

func dashboardDeps(view *dashboard.View, trigger chan struct{}) deps.Deps {
	return deps.Deps{
		Logger:         logger.Nop(),
		View:           view,
		RefreshTrigger: trigger,
	}
}

func TestDashboardServesFromMemory(t *testing.T) {
	view := dashboard.NewView()
	now := time.Now()
	view.ReplaceAll([]*domain.Bookmark{
		{ID: "a", Title: "Go generics", URL: "https://go.dev", CreatedAt: now, Tags: []string{"go"}},
		{ID: "b", Title: "Recipes", URL: "https://food.example.com", CreatedAt: now.Add(time.Hour), Tags: []string{"cooking"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	Dashboard(dashboardDeps(view, nil))(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Bookmarks) != 2 || resp.Count != 2 {
		t.Errorf("bookmarks = %d count = %d, want 2 and 2", len(resp.Bookmarks), resp.Count)
	}
	if len(resp.Tags) != 2 {
		t.Errorf("tags = %v, want both tags", resp.Tags)
	}
	if resp.LastRefresh == "" {
		t.Error("lastRefresh should be set after a refresh")
	}
}

func TestDashboardAppliesFilters(t *testing.T) {
	view := dashboard.NewView()
	now := time.Now()
	view.ReplaceAll([]*domain.Bookmark{
		{ID: "a", Title: "Go generics", URL: "https://go.dev", CreatedAt: now, Tags: []string{"go"}},
		{ID: "b", Title: "Recipes", URL: "https://food.example.com", CreatedAt: now.Add(time.Hour), Tags: []string{"cooking"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?q=generics&tag=go", nil)
	rec := httptest.NewRecorder()
	Dashboard(dashboardDeps(view, nil))(rec, req)

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Bookmarks) != 1 || resp.Bookmarks[0].ID != "a" {
		t.Errorf("filtered bookmarks = %v, want only id a", resp.Bookmarks)
	}
	// Count and tags describe the whole view, not the filtered slice
	if resp.Count != 2 {
		t.Errorf("count = %d, want the unfiltered total 2", resp.Count)
	}
}

func TestRefreshDashboardTriggers(t *testing.T) {
	trigger := make(chan struct{}, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/refresh", nil)
	rec := httptest.NewRecorder()
	RefreshDashboard(dashboardDeps(dashboard.NewView(), trigger))(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	select {
	case <-trigger:
	default:
		t.Error("refresh trigger was not signaled")
	}
}

func TestRefreshDashboardBusy(t *testing.T) {
	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/refresh", nil)
	rec := httptest.NewRecorder()
	RefreshDashboard(dashboardDeps(dashboard.NewView(), trigger))(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429 when a refresh is already pending", rec.Code)
	}
}

func TestImportDisabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	rec := httptest.NewRecorder()
	Import(deps.Deps{Logger: logger.Nop()})(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when import is not configured", rec.Code)
	}
}

func TestImportTriggers(t *testing.T) {
	trigger := make(chan struct{}, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	rec := httptest.NewRecorder()
	Import(deps.Deps{Logger: logger.Nop(), ImportTrigger: trigger})(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	select {
	case <-trigger:
	default:
		t.Error("import trigger was not signaled")
	}
}
