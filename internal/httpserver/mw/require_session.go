package mw

import (
	"encoding/json"
	"net/http"

	"github.com/revisitly/revisitly/internal/session"
)

type authErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RequireSession rejects requests arriving without a signed-in user.
// The email-link reminder routes never use this: they are reachable
// with no authenticated context at all.
func RequireSession(gate *session.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := gate.State()
			if state.Loading {
				writeAuthError(w, http.StatusServiceUnavailable, "session still resolving, retry shortly")
				return
			}
			if state.User == nil {
				writeAuthError(w, http.StatusUnauthorized, "sign in required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(authErrorResponse{Success: false, Message: message})
}
