package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
)

// DeleteBookmark removes a bookmark remotely, then drops it from the
// local view so the dashboard reflects it without a full refresh.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Client.Delete(r.Context(), id); err != nil {
			writeError(d, w, err)
			return
		}
		d.View.Remove(id)
		d.Logger.Info("bookmark deleted", logger.String("id", id))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// TrackBookmark records a bookmark open.
func TrackBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Client.TrackOpen(r.Context(), id); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// SmartReminder updates the smart follow-up settings of a bookmark,
// clamping the day delay to its valid range before anything travels.
func SmartReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var settings domain.SmartFollowUp
		if !decodeBody(w, r, &settings) {
			return
		}
		settings.DaysDelay = domain.ClampFollowUpDays(settings.DaysDelay)

		if err := d.Client.UpdateSmartReminder(r.Context(), id, settings); err != nil {
			writeError(d, w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}
