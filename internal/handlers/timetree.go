package handlers

import (
	"net/http"
	"time"

	"tempora-backend/internal/services"
)

type TimeTreeHandler struct {
	timetree *services.TimeTreeService
}

func NewTimeTreeHandler(timetree *services.TimeTreeService) *TimeTreeHandler {
	return &TimeTreeHandler{timetree: timetree}
}

func (h *TimeTreeHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid date"))
		return
	}

	tree, err := h.timetree.GetDaily(r.Context(), date)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

func (h *TimeTreeHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r, "date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid date"))
		return
	}

	tree, err := h.timetree.GetWeekly(r.Context(), date)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// Monthly serves a ?month=YYYY-MM view, defaulting to the current month.
func (h *TimeTreeHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	year, month := time.Now().Year(), time.Now().Month()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("invalid month, expected YYYY-MM"))
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	tree, err := h.timetree.GetMonthly(r.Context(), year, month)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}
