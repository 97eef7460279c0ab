package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

// PatientHandler handles patient-related HTTP requests
type PatientHandler struct {
	patients *services.PatientService
}

// NewPatientHandler creates a new patient handler
func NewPatientHandler(patients *services.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// CreatePatient handles POST /api/patients
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var in entities.PatientCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.patients.Create(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListPatients handles GET /api/patients
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patients.List(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patients)
}

// GetPatient handles GET /api/patients/{patient_id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	patient, err := h.patients.Get(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, patient)
}
