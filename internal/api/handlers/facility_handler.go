package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

// FacilityHandler handles pharmacy and lab registration HTTP requests
type FacilityHandler struct {
	facilities *services.FacilityService
}

// NewFacilityHandler creates a new facility handler
func NewFacilityHandler(facilities *services.FacilityService) *FacilityHandler {
	return &FacilityHandler{facilities: facilities}
}

// CreatePharmacy handles POST /api/pharmacies
func (h *FacilityHandler) CreatePharmacy(w http.ResponseWriter, r *http.Request) {
	var in entities.FacilityCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.facilities.CreatePharmacy(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListPharmacies handles GET /api/pharmacies
func (h *FacilityHandler) ListPharmacies(w http.ResponseWriter, r *http.Request) {
	pharmacies, err := h.facilities.ListPharmacies(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pharmacies)
}

// GetPharmacy handles GET /api/pharmacies/{pharmacy_id}
func (h *FacilityHandler) GetPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacyID, ok := pathInt(w, r, "pharmacy_id")
	if !ok {
		return
	}

	pharmacy, err := h.facilities.GetPharmacy(r.Context(), pharmacyID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pharmacy)
}

// GetNearestPharmacies handles GET /api/pharmacies/nearest/{patient_id}
func (h *FacilityHandler) GetNearestPharmacies(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	nearest, err := h.facilities.NearestPharmacies(r.Context(), patientID, services.DefaultNearestLimit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nearest)
}

// CreateLab handles POST /api/labs
func (h *FacilityHandler) CreateLab(w http.ResponseWriter, r *http.Request) {
	var in entities.FacilityCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.facilities.CreateLab(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListLabs handles GET /api/labs
func (h *FacilityHandler) ListLabs(w http.ResponseWriter, r *http.Request) {
	labs, err := h.facilities.ListLabs(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, labs)
}

// GetLab handles GET /api/labs/{lab_id}
func (h *FacilityHandler) GetLab(w http.ResponseWriter, r *http.Request) {
	labID, ok := pathInt(w, r, "lab_id")
	if !ok {
		return
	}

	lab, err := h.facilities.GetLab(r.Context(), labID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, lab)
}

// GetNearestLabs handles GET /api/labs/nearest/{patient_id}
func (h *FacilityHandler) GetNearestLabs(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	nearest, err := h.facilities.NearestLabs(r.Context(), patientID, services.DefaultNearestLimit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, nearest)
}
