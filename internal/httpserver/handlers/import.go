package handlers

import (
	"net/http"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
)

// Import triggers a manual bookmark import from the configured file.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ImportTrigger == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"success": false,
				"message": "import is not configured",
			})
			return
		}

		select {
		case d.ImportTrigger <- struct{}{}:
			d.Logger.Info("manual import triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]any{"success": true})
		default:
			d.Logger.Warn("import already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"success": false,
				"message": "import already in progress",
			})
		}
	}
}
