package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
)

type verifyRemindResponse struct {
	Success      bool   `json:"success"`
	OwnerEmail   string `json:"ownerEmail,omitempty"`
	OwnerMatches bool   `json:"ownerMatches"`
	MinRemindAt  string `json:"minRemindAt"`
}

type remindSubmitRequest struct {
	RemindAt string `json:"remindAt"`
}

// VerifyRemind handles the emailed deep link. The token stays opaque:
// it is forwarded for server-side verification and the response only
// adds whether the owning account matches whoever is signed in here.
// No session is required on this route.
func VerifyRemind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		ownerEmail, err := d.Controller.VerifyEmailLink(r.Context(), token)
		if err != nil {
			writeError(d, w, err)
			return
		}

		matches := false
		if user := d.Gate.User(); user != nil && ownerEmail != "" {
			matches = strings.EqualFold(user.Email, ownerEmail)
		}

		writeJSON(w, http.StatusOK, verifyRemindResponse{
			Success:      true,
			OwnerEmail:   ownerEmail,
			OwnerMatches: matches,
			MinRemindAt:  d.Codec.NowLocalWallClock(),
		})
	}
}

// SubmitRemind reschedules the reminder through the emailed token.
func SubmitRemind(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		var req remindSubmitRequest
		if !decodeBody(w, r, &req) {
			return
		}

		mode := domain.RescheduleEmailLink{Token: token}
		outcome, err := d.Controller.Submit(r.Context(), mode, domain.Draft{RemindAt: req.RemindAt})
		if err != nil {
			writeError(d, w, err)
			return
		}

		writeJSON(w, http.StatusOK, submitResponse{
			Success:       true,
			Message:       outcome.Message,
			Redirect:      outcome.Redirect,
			RedirectAfter: outcome.RedirectAfter.Milliseconds(),
		})
	}
}
