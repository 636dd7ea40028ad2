package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/httpserver/handlers"
	"github.com/revisitly/revisitly/internal/httpserver/mw"
)

func init() { Register(registerImport) }

func registerImport(r chi.Router, d deps.Deps) {
	r.With(mw.RequireSession(d.Gate)).Post("/api/import", handlers.Import(d))
}
