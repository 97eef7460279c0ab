package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

// PreferenceHandler handles patient-preference HTTP requests
type PreferenceHandler struct {
	preferences *services.PreferenceService
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferences *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// CreatePreference handles POST /api/preferences
func (h *PreferenceHandler) CreatePreference(w http.ResponseWriter, r *http.Request) {
	var in entities.PreferenceCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.preferences.Create(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListPreferences handles GET /api/preferences
func (h *PreferenceHandler) ListPreferences(w http.ResponseWriter, r *http.Request) {
	preferences, err := h.preferences.List(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, preferences)
}

// GetSlimPreferences handles GET /api/preferences/patient/{patient_id}/{preference_type}
func (h *PreferenceHandler) GetSlimPreferences(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	slim, err := h.preferences.SlimByPatientAndType(r.Context(), patientID, r.PathValue("preference_type"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, slim)
}

// GetPreferredPharmacies handles GET /api/preferences/patient/{patient_id}/pharmacies/detailed
func (h *PreferenceHandler) GetPreferredPharmacies(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	detailed, err := h.preferences.DetailedPharmacyPreferences(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detailed)
}

// GetPreferredLabs handles GET /api/preferences/patient/{patient_id}/labs/detailed
func (h *PreferenceHandler) GetPreferredLabs(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	detailed, err := h.preferences.DetailedLabPreferences(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detailed)
}
