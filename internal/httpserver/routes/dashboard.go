package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/httpserver/handlers"
	"github.com/revisitly/revisitly/internal/httpserver/mw"
)

func init() { Register(registerDashboard) }

func registerDashboard(r chi.Router, d deps.Deps) {
	r.With(mw.RequireSession(d.Gate)).Get("/api/dashboard", handlers.Dashboard(d))
	r.With(mw.RequireSession(d.Gate)).Post("/api/dashboard/refresh", handlers.RefreshDashboard(d))
}
