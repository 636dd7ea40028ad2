package handlers

import (
	"net/http"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
)

type dashboardResponse struct {
	Success     bool               `json:"success"`
	Bookmarks   []*domain.Bookmark `json:"bookmarks"`
	Tags        []string           `json:"tags"`
	Count       int                `json:"count"`
	LastRefresh string             `json:"lastRefresh,omitempty"`
}

// Dashboard serves the current in-memory list with the search and tag
// filters the dashboard offers. It never blocks on the network; the
// refresher owns that.
func Dashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search := r.URL.Query().Get("q")
		tag := r.URL.Query().Get("tag")

		resp := dashboardResponse{
			Success:   true,
			Bookmarks: d.View.Filter(search, tag),
			Tags:      d.View.Tags(),
			Count:     d.View.Count(),
		}
		if last := d.View.LastRefresh(); !last.IsZero() {
			resp.LastRefresh = d.Codec.ToWire(last)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// RefreshDashboard triggers a manual list refresh.
func RefreshDashboard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.RefreshTrigger <- struct{}{}:
			d.Logger.Info("manual dashboard refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]any{"success": true})
		default:
			d.Logger.Warn("dashboard refresh already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"message": "refresh already in progress",
			})
		}
	}
}
