package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

// RequisitionHandler handles requisition-form HTTP requests
type RequisitionHandler struct {
	requisitions *services.RequisitionService
}

// NewRequisitionHandler creates a new requisition handler
func NewRequisitionHandler(requisitions *services.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{requisitions: requisitions}
}

// CreateRequisition handles POST /api/requisitions
func (h *RequisitionHandler) CreateRequisition(w http.ResponseWriter, r *http.Request) {
	var in entities.RequisitionCreate
	if !decodeBody(w, r, &in) {
		return
	}

	created, err := h.requisitions.Create(r.Context(), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, created)
}

// ListRequisitions handles GET /api/requisitions
func (h *RequisitionHandler) ListRequisitions(w http.ResponseWriter, r *http.Request) {
	requisitions, err := h.requisitions.List(r.Context(), queryInt(r, "skip", 0), queryInt(r, "limit", 100))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, requisitions)
}

// GetRequisition handles GET /api/requisitions/{requisition_id}
func (h *RequisitionHandler) GetRequisition(w http.ResponseWriter, r *http.Request) {
	requisition, err := h.requisitions.Get(r.Context(), r.PathValue("requisition_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, requisition)
}

// GetLatestRequisition handles GET /api/requisitions/latest/{patient_id}
func (h *RequisitionHandler) GetLatestRequisition(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathInt(w, r, "patient_id")
	if !ok {
		return
	}

	latest, err := h.requisitions.LatestByPatient(r.Context(), patientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, latest)
}

// UpdateRequisition handles PATCH /api/requisitions/{requisition_id}
func (h *RequisitionHandler) UpdateRequisition(w http.ResponseWriter, r *http.Request) {
	var in entities.RequisitionUpdate
	if !decodeBody(w, r, &in) {
		return
	}

	updated, err := h.requisitions.Update(r.Context(), r.PathValue("requisition_id"), &in)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// AssignLab handles PUT /api/requisitions/{requisition_id}/lab
func (h *RequisitionHandler) AssignLab(w http.ResponseWriter, r *http.Request) {
	var in struct {
		LabID int `json:"lab_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.LabID <= 0 {
		respondWithError(w, http.StatusBadRequest, "lab_id is required")
		return
	}

	updated, err := h.requisitions.AssignLab(r.Context(), r.PathValue("requisition_id"), in.LabID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

// FaxRequisition handles POST /api/requisitions/{requisition_id}/fax
func (h *RequisitionHandler) FaxRequisition(w http.ResponseWriter, r *http.Request) {
	message, err := h.requisitions.Fax(r.Context(), r.PathValue("requisition_id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": message})
}
