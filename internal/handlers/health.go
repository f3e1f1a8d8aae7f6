package handlers

import (
	"net/http"
	"time"

	"commitlens/internal/models"
)

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := &models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
	}
	h.writeJSON(w, response, http.StatusOK)
}
