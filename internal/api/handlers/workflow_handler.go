package handlers

import (
	"net/http"

	"github.com/clinicbridge/backend/internal/application/services"
)

// WorkflowHandler handles workflow HTTP requests. The workflow entry
// point is not a chat interface: it executes a named tool with
// structured JSON arguments.
type WorkflowHandler struct {
	workflows *services.WorkflowService
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(workflows *services.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflows: workflows}
}

// RunWorkflow handles POST /api/workflow
func (h *WorkflowHandler) RunWorkflow(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Tool      string         `json:"tool"`
		Arguments map[string]any `json:"arguments"`
		Query     string         `json:"query"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Tool == "" {
		respondWithError(w, http.StatusBadRequest, "tool is required")
		return
	}

	result, err := h.workflows.Dispatch(r.Context(), in.Tool, in.Arguments)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"tool":      in.Tool,
		"arguments": in.Arguments,
		"result":    result,
	})
}

// GenerateOrders handles POST /api/workflow/generate-orders
func (h *WorkflowHandler) GenerateOrders(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PatientID int `json:"patient_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.PatientID <= 0 {
		respondWithError(w, http.StatusBadRequest, "patient_id is required")
		return
	}

	orders, err := h.workflows.GenerateOrders(r.Context(), in.PatientID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, orders)
}

// CompletePrescription handles POST /api/workflow/complete-prescription
func (h *WorkflowHandler) CompletePrescription(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PatientID      int    `json:"patient_id"`
		PrescriptionID string `json:"prescription_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.PatientID <= 0 || in.PrescriptionID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id and prescription_id are required")
		return
	}

	prescription, err := h.workflows.CompletePrescription(r.Context(), in.PatientID, in.PrescriptionID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"patient_id":   in.PatientID,
		"prescription": prescription,
	})
}

// CompleteRequisition handles POST /api/workflow/complete-requisition
func (h *WorkflowHandler) CompleteRequisition(w http.ResponseWriter, r *http.Request) {
	var in struct {
		PatientID     int    `json:"patient_id"`
		RequisitionID string `json:"requisition_id"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if in.PatientID <= 0 || in.RequisitionID == "" {
		respondWithError(w, http.StatusBadRequest, "patient_id and requisition_id are required")
		return
	}

	requisition, err := h.workflows.CompleteRequisition(r.Context(), in.PatientID, in.RequisitionID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]any{
		"patient_id":  in.PatientID,
		"requisition": requisition,
	})
}
