package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tempora-backend/internal/models"
	"tempora-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func errorResp(message string) models.ErrorResponse {
	return models.ErrorResponse{Message: message}
}

// handleServiceError maps the typed service errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body.
func handleServiceError(w http.ResponseWriter, err error) {
	var notFound *services.NotFoundError
	var validation *services.ValidationError
	var conflict *services.ConflictError

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, errorResp(notFound.Message))
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResp(validation.Message))
	case errors.As(err, &conflict):
		writeJSON(w, http.StatusConflict, errorResp(conflict.Message))
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("internal server error"))
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// dateParam reads a ?date= query value, defaulting to today when absent.
func dateParam(r *http.Request, name string) (models.LocalDate, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return models.DateOf(time.Now()), nil
	}
	return models.ParseLocalDate(raw)
}
