package handler

import (
	"net/http"
)

// HealthHandler reports liveness plus whatever runtime stats the stats func
// returns.
type HealthHandler struct {
	stats func() map[string]any
}

func NewHealthHandler(stats func() map[string]any) *HealthHandler {
	return &HealthHandler{stats: stats}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	out := map[string]any{"status": "ok"}
	if h.stats != nil {
		for k, v := range h.stats() {
			out[k] = v
		}
	}
	writeJSON(w, http.StatusOK, out)
}
