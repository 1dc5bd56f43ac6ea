// Package handler exposes liveness and readiness endpoints for load
// balancers and orchestration probes.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Pinger is the dependency probed for readiness, normally the database pool.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves /healthz and /readyz.
type Handler struct {
	db Pinger
}

// NewHandler returns a health Handler probing db for readiness.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

// Healthz reports process liveness. It always succeeds while the process
// can serve requests.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeStatus(w, http.StatusOK, "ok")
}

// Readyz reports readiness: the store must answer a ping within two seconds.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeStatus(w, http.StatusOK, "ok")
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
