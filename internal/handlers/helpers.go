package handlers

import (
	"encoding/json"
	"net/http"

	"commitlens/internal/apperr"
	"commitlens/internal/models"
)

// writeJSON writes a JSON response with the given status code
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode JSON response", err)
	}
}

// writeError serializes any error as the structured error payload, using
// the taxonomy's HTTP status mapping.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	appErr := apperr.As(err)

	h.log.With("error_kind", appErr.Kind).
		With("status_code", appErr.HTTPStatus()).
		Error(appErr.Message, appErr.Err)

	response := &models.ErrorResponse{
		Error: appErr.Message,
		Code:  string(appErr.Kind),
	}
	h.writeJSON(w, response, appErr.HTTPStatus())
}
