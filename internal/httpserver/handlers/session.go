package handlers

import (
	"net/http"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type socialLoginRequest struct {
	IDToken string `json:"idToken"`
}

type sessionView struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type sessionResponse struct {
	Success bool         `json:"success"`
	Loading bool         `json:"loading"`
	User    *sessionView `json:"user"`
}

// viewOf strips the bearer token: it never leaves the gateway.
func viewOf(u *domain.User) *sessionView {
	if u == nil {
		return nil
	}
	return &sessionView{Name: u.Name, Email: u.Email, ProfileImageURL: u.ProfileImageURL}
}

// Session exposes the gate's current state.
func Session(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := d.Gate.State()
		writeJSON(w, http.StatusOK, sessionResponse{
			Success: true,
			Loading: state.Loading,
			User:    viewOf(state.User),
		})
	}
}

// Login runs a credentials login against the remote service and
// installs the session. The gate epoch is captured before the
// round-trip so a logout racing the completion wins.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(d, w, domain.NewValidationError("credentials", "email and password are required"))
			return
		}

		epoch := d.Gate.Epoch()
		user, err := d.Client.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(d, w, err)
			return
		}
		d.Gate.Establish(r.Context(), user, epoch)
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: viewOf(user)})
	}
}

// Signup registers an account and signs it in.
func Signup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(d, w, domain.NewValidationError("credentials", "email and password are required"))
			return
		}

		epoch := d.Gate.Epoch()
		user, err := d.Client.Signup(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeError(d, w, err)
			return
		}
		d.Gate.Establish(r.Context(), user, epoch)
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: viewOf(user)})
	}
}

// SocialLogin exchanges a provider ID token for a service session.
func SocialLogin(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req socialLoginRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.IDToken == "" {
			writeError(d, w, domain.NewValidationError("idToken", "an identity token is required"))
			return
		}

		epoch := d.Gate.Epoch()
		user, err := d.Client.SocialLogin(r.Context(), req.IDToken)
		if err != nil {
			writeError(d, w, err)
			return
		}
		d.Gate.Establish(r.Context(), user, epoch)
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: viewOf(user)})
	}
}

// Logout tears the session down along with the cached dashboard data,
// in memory and in Redis. It always reports success: the signed-out
// state is guaranteed locally no matter what the provider or the store
// said.
func Logout(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Gate.Logout(r.Context())
		d.View.Clear()
		if d.Snapshots != nil {
			if err := d.Snapshots.DeleteBookmarks(r.Context()); err != nil {
				d.Logger.Warn("failed to drop dashboard snapshot on logout", logger.Error(err))
			}
		}
		writeJSON(w, http.StatusOK, sessionResponse{Success: true, User: nil})
	}
}
