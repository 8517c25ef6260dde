package handlers

import (
	"encoding/json"
	"net/http"

	"tempora-backend/internal/models"
	"tempora-backend/internal/services"
)

type ActivityLogHandler struct {
	activity *services.ActivityLogService
}

func NewActivityLogHandler(activity *services.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{activity: activity}
}

// Query lists logs for ?date= (default today) or for an inclusive ?from=&to=
// range when both are given.
func (h *ActivityLogHandler) Query(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("from") != "" || q.Get("to") != "" {
		from, err := models.ParseLocalDate(q.Get("from"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("invalid from date"))
			return
		}
		to, err := models.ParseLocalDate(q.Get("to"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("invalid to date"))
			return
		}
		if from.After(to.Time) {
			writeJSON(w, http.StatusBadRequest, errorResp("start date cannot be after end date"))
			return
		}
		logs, err := h.activity.FindByRange(r.Context(), from, to)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, logs)
		return
	}

	date, err := dateParam(r, "date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid date"))
		return
	}
	logs, err := h.activity.FindByDate(r.Context(), date)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *ActivityLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid activity log id"))
		return
	}

	log, err := h.activity.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (h *ActivityLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ActivityLogCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid request body"))
		return
	}

	log, err := h.activity.Create(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, log)
}

func (h *ActivityLogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid activity log id"))
		return
	}

	var req models.ActivityLogUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid request body"))
		return
	}

	log, err := h.activity.Update(r.Context(), id, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (h *ActivityLogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid activity log id"))
		return
	}

	if err := h.activity.Delete(r.Context(), id); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
