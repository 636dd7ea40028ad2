package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Get("/api/session", handlers.Session(d))
	r.Post("/api/session/login", handlers.Login(d))
	r.Post("/api/session/signup", handlers.Signup(d))
	r.Post("/api/session/social", handlers.SocialLogin(d))
	r.Post("/api/session/logout", handlers.Logout(d))
}
