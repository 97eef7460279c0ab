package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

// DiagnosisHandler handles diagnosis-related HTTP requests
type DiagnosisHandler struct {
	diagnoses *services.DiagnosisService
}

// NewDiagnosisHandler creates a new diagnosis handler
func NewDiagnosisHandler(diagnoses *services.DiagnosisService) *DiagnosisHandler {
	return &DiagnosisHandler{diagnoses: diagnoses}
}

// CreateDiagnosis handles POST /api/diagnosis
func (h *DiagnosisHandler) CreateDiagnosis(w http.ResponseWriter, r *http.Request) {
	var in entities.DiagnosisCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.diagnoses.Create(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListByPatientQuery handles GET /api/diagnosis?patient_id=N
func (h *DiagnosisHandler) ListByPatientQuery(w http.ResponseWriter, r *http.Request) {
	patientID := queryInt(r, "patient_id", 0)
	if patientID <= 0 {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}
	h.listByPatient(w, r, patientID)
}

// ListByPatientPath handles GET /api/diagnosis/patient/{patient_id}
func (h *DiagnosisHandler) ListByPatientPath(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}
	h.listByPatient(w, r, patientID)
}

// GetLatest handles GET /api/diagnosis/latest/{patient_id}
func (h *DiagnosisHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	latest, err := h.diagnoses.LatestByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, latest)
}

func (h *DiagnosisHandler) listByPatient(w http.ResponseWriter, r *http.Request, patientID int) {
	diagnoses, err := h.diagnoses.ListByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, diagnoses)
}
