package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/httpserver/handlers"
	"github.com/revisitly/revisitly/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.With(mw.RequireSession(d.Gate)).Post("/api/bookmarks/{id}/delete", handlers.DeleteBookmark(d))
	r.With(mw.RequireSession(d.Gate)).Post("/api/bookmarks/{id}/track", handlers.TrackBookmark(d))
	r.With(mw.RequireSession(d.Gate)).Patch("/api/bookmarks/{id}/smart-reminder", handlers.SmartReminder(d))
}
