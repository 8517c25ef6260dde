package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tempora-backend/internal/models"
	"tempora-backend/internal/services"
)

type TimerHandler struct {
	timer *services.TimerService
}

func NewTimerHandler(timer *services.TimerService) *TimerHandler {
	return &TimerHandler{timer: timer}
}

// Active returns the RUNNING or PAUSED session, or a JSON null when the timer
// is idle.
func (h *TimerHandler) Active(w http.ResponseWriter, r *http.Request) {
	session, err := h.timer.GetActiveSession(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.TimerStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid request body"))
		return
	}

	session, err := h.timer.Start(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid session id"))
		return
	}

	session, err := h.timer.Pause(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *TimerHandler) Resume(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid session id"))
		return
	}

	session, err := h.timer.Resume(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Stop ends the session. ?completed=false cancels instead of completing;
// omitting the parameter completes.
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid session id"))
		return
	}

	completed := true
	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err = strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("completed must be true or false"))
			return
		}
	}

	session, err := h.timer.Stop(r.Context(), id, completed)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}
