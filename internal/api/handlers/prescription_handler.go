package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

// PrescriptionHandler handles prescription-form HTTP requests
type PrescriptionHandler struct {
	prescriptions *services.PrescriptionService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(prescriptions *services.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptions: prescriptions}
}

// CreatePrescription handles POST /api/prescriptions
func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var in entities.PrescriptionCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.prescriptions.Create(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListPrescriptions handles GET /api/prescriptions
func (h *PrescriptionHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptions.List(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prescriptions)
}

// GetPrescription handles GET /api/prescriptions/{prescription_id}
func (h *PrescriptionHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	prescription, err := h.prescriptions.Get(r.Context(), r.PathValue("prescription_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, prescription)
}

// GetLatestPrescription handles GET /api/prescriptions/latest/{patient_id}
func (h *PrescriptionHandler) GetLatestPrescription(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	latest, err := h.prescriptions.LatestByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, latest)
}

// UpdatePrescription handles PATCH /api/prescriptions/{prescription_id}
func (h *PrescriptionHandler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	var in entities.PrescriptionUpdate
	if !decodeBody(w, r, &in) {
		return
	}

	updated, err := h.prescriptions.Update(r.Context(), r.PathValue("prescription_id"), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// AssignPharmacy handles PUT /api/prescriptions/{prescription_id}/pharmacy
func (h *PrescriptionHandler) AssignPharmacy(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PharmacyID int `json:"pharmacy_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.PharmacyID <= 0 {
		respondWithError(w, http.StatusBadRequest, "pharmacy_id is required")
		return
	}

	updated, err := h.prescriptions.AssignPharmacy(r.Context(), r.PathValue("prescription_id"), in.PharmacyID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// FaxPrescription handles POST /api/prescriptions/{prescription_id}/fax
func (h *PrescriptionHandler) FaxPrescription(w http.ResponseWriter, r *http.Request) {
	message, err := h.prescriptions.Fax(r.Context(), r.PathValue("prescription_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}
