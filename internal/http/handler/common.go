package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/tecnimaq/maintenance-api/internal/domain"
	"go.uber.org/zap"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondData wraps data in the success envelope
func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, domain.APIResponse{
		Status: true,
		Data:   data,
	})
}

// respondMessage sends a success envelope without data
func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, domain.APIResponse{
		Status:  true,
		Message: message,
	})
}

// respondError maps a service error onto the envelope: validation failures
// carry the per-field map with 422, the other taxonomy errors carry their
// localized message, anything else is a logged 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	if ve, ok := domain.AsValidationError(err); ok {
		respondJSON(w, http.StatusUnprocessableEntity, domain.APIResponse{
			Status:  false,
			Message: "Datos de entrada inválidos",
			Errors:  ve.Fields,
		})
		return
	}
	if nfe, ok := domain.AsNotFoundError(err); ok {
		respondJSON(w, http.StatusNotFound, domain.APIResponse{
			Status:  false,
			Message: nfe.Message,
		})
		return
	}
	if ce, ok := domain.AsConflictError(err); ok {
		respondJSON(w, http.StatusConflict, domain.APIResponse{
			Status:  false,
			Message: ce.Message,
		})
		return
	}
	if ae, ok := domain.AsAuthError(err); ok {
		respondJSON(w, http.StatusUnauthorized, domain.APIResponse{
			Status:  false,
			Message: ae.Message,
		})
		return
	}

	logger.Error("request failed", zap.Error(err))
	respondJSON(w, http.StatusInternalServerError, domain.APIResponse{
		Status:  false,
		Message: "Error interno del servidor",
	})
}

// respondBadRequest sends a 400 envelope
func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, domain.APIResponse{
		Status:  false,
		Message: message,
	})
}

// parseID extracts the {id} route parameter as an unsigned integer
func parseID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// decodeBody parses the JSON request body into target
func decodeBody(r *http.Request, target interface{}) error {
	return json.NewDecoder(r.Body).Decode(target)
}

const invalidIDMessage = "Identificador inválido"
const invalidBodyMessage = "Cuerpo de la solicitud inválido"
