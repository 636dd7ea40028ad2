package handlers

import (
	"net/http"

	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/form"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
)

type formResponse struct {
	Success     bool         `json:"success"`
	Mode        string       `json:"mode"`
	Draft       domain.Draft `json:"draft"`
	MinRemindAt string       `json:"minRemindAt"`
}

type submitRequest struct {
	ID    string       `json:"id"`
	Mode  string       `json:"mode"`
	Token string       `json:"token"`
	Draft domain.Draft `json:"draft"`
}

type submitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DraftCleared  bool   `json:"draftCleared"`
	Redirect      string `json:"redirect"`
	RedirectAfter int64  `json:"redirectAfterMs"`
}

func modeName(m domain.Mode) string {
	switch m.(type) {
	case domain.Create:
		return "create"
	case domain.Edit:
		return "edit"
	case domain.RescheduleDashboard:
		return "remind"
	case domain.RescheduleEmailLink:
		return "remind-email"
	default:
		return "unknown"
	}
}

// PrepareForm resolves the mode from the query parameters and returns
// the prepared draft, with reminder values already in local wall-clock
// form and the minimum selectable reminder time.
func PrepareForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mode, err := domain.DetectMode(q.Get("id"), q.Get("mode"), q.Get("token"))
		if err != nil {
			writeError(d, w, domain.NewValidationError("mode", err.Error()))
			return
		}

		draft, err := d.Controller.Prepare(r.Context(), mode, form.Prefill{
			URL:      q.Get("url"),
			Title:    q.Get("title"),
			Tags:     q.Get("tag"),
			RemindAt: q.Get("remindAt"),
		})
		if err != nil {
			writeError(d, w, err)
			return
		}

		writeJSON(w, http.StatusOK, formResponse{
			Success:     true,
			Mode:        modeName(mode),
			Draft:       draft,
			MinRemindAt: d.Codec.NowLocalWallClock(),
		})
	}
}

// SubmitForm validates and dispatches a draft submission.
func SubmitForm(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitRequest
		if !decodeBody(w, r, &req) {
			return
		}

		mode, err := domain.DetectMode(req.ID, req.Mode, req.Token)
		if err != nil {
			writeError(d, w, domain.NewValidationError("mode", err.Error()))
			return
		}

		outcome, err := d.Controller.Submit(r.Context(), mode, req.Draft)
		if err != nil {
			writeError(d, w, err)
			return
		}

		writeJSON(w, http.StatusOK, submitResponse{
			Success:       true,
			Message:       outcome.Message,
			DraftCleared:  outcome.DraftCleared,
			Redirect:      outcome.Redirect,
			RedirectAfter: outcome.RedirectAfter.Milliseconds(),
		})
	}
}
