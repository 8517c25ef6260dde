package handlers

import (
	"encoding/json"
	"net/http"

	"tempora-backend/internal/models"
	"tempora-backend/internal/services"
)

type ProfileHandler struct {
	profile *services.ProfileService
}

func NewProfileHandler(profile *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// Get returns the profile, or 204 when none has been saved yet.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Get(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if profile == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req models.UserProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("invalid request body"))
		return
	}

	profile, err := h.profile.Save(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
