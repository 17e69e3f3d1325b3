package controllers

import (
	"encoding/json"
	"net/http"

	"saarthi/saarthi/services/session"
)

type HealthController struct {
	store *session.Store
}

func NewHealthController(store *session.Store) *HealthController {
	return &HealthController{store: store}
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// Banner describes the service and its entry points.
func (h *HealthController) Banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":     "Suno Saarthi API",
		"status":   "running",
		"sessions": h.store.Len(),
		"endpoints": map[string]string{
			"navigation": "/api/navigation",
			"llm":        "/api/llm",
			"wake":       "/api/wake/detect",
			"sessions":   "/api/sessions",
			"health":     "/health",
		},
	})
}
