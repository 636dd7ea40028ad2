package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/revisitly/revisitly/internal/httpserver/deps"
)

type componentStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type readyzResponse struct {
	Ready      bool                       `json:"ready"`
	Components map[string]componentStatus `json:"components"`
}

// Readyz reports readiness: the session gate must have resolved its
// first auth state and the persistence layer must answer.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"session": checkGate(d),
			"redis":   checkRedis(d),
		}

		ready := true
		for _, c := range components {
			if !c.OK {
				ready = false
			}
		}

		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(readyzResponse{
			Ready:      ready,
			Components: components,
		})
	}
}

func checkGate(d deps.Deps) componentStatus {
	if d.Gate == nil {
		return componentStatus{OK: false, Error: "gate not initialized"}
	}
	if d.Gate.Loading() {
		return componentStatus{OK: false, Error: "auth state not yet resolved"}
	}
	return componentStatus{OK: true}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{OK: false, Error: "client not initialized"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{OK: false, Error: "timeout"}
	}
	return componentStatus{OK: true}
}
