package handlers

import (
	"net/http"

	"tempora-backend/internal/models"
	"tempora-backend/internal/services"
)

type StatsHandler struct {
	stats *services.StatsService
}

func NewStatsHandler(stats *services.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get serves period stats. An explicit ?from=&to= pair wins over ?period=;
// period is daily, weekly or monthly (default weekly) anchored on ?date=
// (default today).
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
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
		stats, err := h.stats.GetCustom(r.Context(), from, to)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
		return
	}

	date, err := dateParam(r, "date")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid date"))
		return
	}

	var stats *models.StatsResponse
	switch q.Get("period") {
	case "daily":
		stats, err = h.stats.GetDaily(r.Context(), date)
	case "monthly":
		stats, err = h.stats.GetMonthly(r.Context(), date)
	case "", "weekly":
		stats, err = h.stats.GetWeekly(r.Context(), date)
	default:
		writeJSON(w, http.StatusBadRequest, errorResp("period must be daily, weekly or monthly"))
		return
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// BySource serves the TIMER versus MANUAL breakdown; both range bounds are
// required.
func (h *StatsHandler) BySource(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("from") == "" || q.Get("to") == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("from and to dates are required"))
		return
	}

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

	stats, err := h.stats.GetBySource(r.Context(), from, to)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
