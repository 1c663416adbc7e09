// Package health exposes liveness probes for deployment tooling.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger is the slice of *sql.DB the database probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the health probe endpoints.
type Handler struct {
	db Pinger
}

// New constructs a health handler. db may be nil when the process runs
// against the in-memory store.
func New(db Pinger) *Handler {
	return &Handler{db: db}
}

// Register mounts the probe routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/health", h.handleHealth)
	r.Get("/api/health/db", h.handleDatabaseHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "database": "in-memory"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "database": "connected"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
