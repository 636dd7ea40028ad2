package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/httpserver/handlers"
)

func init() { Register(registerRemind) }

// The emailed reminder link is usable without a local session, the
// token itself is the credential.
func registerRemind(r chi.Router, d deps.Deps) {
	r.Get("/remind/{token}", handlers.VerifyRemind(d))
	r.Post("/remind/{token}", handlers.SubmitRemind(d))
}
