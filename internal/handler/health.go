package handler

import (
	"net/http"

	"solace/internal/httputil"
)

// Health is the liveness probe
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
