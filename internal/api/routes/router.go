package routes

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/clinicbridge/backend/internal/api/handlers"
	"github.com/clinicbridge/backend/internal/api/middleware"
	"github.com/clinicbridge/backend/internal/infrastructure/observability"
)

// Router holds all route handlers

type Router struct {
	mux *http.ServeMux

	patientHandler *handlers.PatientHandler

	diagnosisHandler *handlers.DiagnosisHandler

	preferenceHandler *handlers.PreferenceHandler

	prescriptionHandler *handlers.PrescriptionHandler
	requisitionHandler  *handlers.RequisitionHandler

	facilityHandler *handlers.FacilityHandler
	workflowHandler *handlers.WorkflowHandler

	logger  zerolog.Logger
	metrics *observability.Metrics
}

// NewRouter creates a new router

func NewRouter(

	patientHandler *handlers.PatientHandler,

	diagnosisHandler *handlers.DiagnosisHandler,

	preferenceHandler *handlers.PreferenceHandler,

	prescriptionHandler *handlers.PrescriptionHandler,
	requisitionHandler *handlers.RequisitionHandler,

	facilityHandler *handlers.FacilityHandler,
	workflowHandler *handlers.WorkflowHandler,

	logger zerolog.Logger,
	metrics *observability.Metrics,

) *Router {

	return &Router{

		mux: http.NewServeMux(),

		patientHandler: patientHandler,

		diagnosisHandler: diagnosisHandler,

		preferenceHandler: preferenceHandler,

		prescriptionHandler: prescriptionHandler,
		requisitionHandler:  requisitionHandler,

		facilityHandler: facilityHandler,
		workflowHandler: workflowHandler,

		logger:  logger,
		metrics: metrics,
	}

}

// SetupRoutes configures all application routes

func (r *Router) SetupRoutes() http.Handler {

	// Health check endpoint

	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {

		w.WriteHeader(http.StatusOK)

		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}

	})

	// Patient endpoints

	r.mux.HandleFunc("POST /api/patients", r.patientHandler.CreatePatient)

	r.mux.HandleFunc("GET /api/patients", r.patientHandler.ListPatients)

	r.mux.HandleFunc("GET /api/patients/{patient_id}", r.patientHandler.GetPatient)

	// Diagnosis endpoints

	r.mux.HandleFunc("POST /api/diagnosis", r.diagnosisHandler.CreateDiagnosis)

	r.mux.HandleFunc("GET /api/diagnosis", r.diagnosisHandler.ListByPatientQuery)

	r.mux.HandleFunc("GET /api/diagnosis/patient/{patient_id}", r.diagnosisHandler.ListByPatientPath)
	r.mux.HandleFunc("GET /api/diagnosis/latest/{patient_id}", r.diagnosisHandler.GetLatest)

	// Preference endpoints

	r.mux.HandleFunc("POST /api/preferences", r.preferenceHandler.CreatePreference)

	r.mux.HandleFunc("GET /api/preferences", r.preferenceHandler.ListPreferences)

	r.mux.HandleFunc("GET /api/preferences/patient/{patient_id}/{preference_type}", r.preferenceHandler.GetSlimPreferences)

	r.mux.HandleFunc("GET /api/preferences/patient/{patient_id}/pharmacies/detailed", r.preferenceHandler.GetPreferredPharmacies)
	r.mux.HandleFunc("GET /api/preferences/patient/{patient_id}/labs/detailed", r.preferenceHandler.GetPreferredLabs)

	// Prescription endpoints

	r.mux.HandleFunc("POST /api/prescriptions", r.prescriptionHandler.CreatePrescription)

	r.mux.HandleFunc("GET /api/prescriptions", r.prescriptionHandler.ListPrescriptions)

	r.mux.HandleFunc("GET /api/prescriptions/latest/{patient_id}", r.prescriptionHandler.GetLatestPrescription)

	r.mux.HandleFunc("GET /api/prescriptions/{prescription_id}", r.prescriptionHandler.GetPrescription)

	r.mux.HandleFunc("PATCH /api/prescriptions/{prescription_id}", r.prescriptionHandler.UpdatePrescription)

	r.mux.HandleFunc("PUT /api/prescriptions/{prescription_id}/pharmacy", r.prescriptionHandler.AssignPharmacy)
	r.mux.HandleFunc("POST /api/prescriptions/{prescription_id}/fax", r.prescriptionHandler.FaxPrescription)

	// Requisition endpoints

	r.mux.HandleFunc("POST /api/requisitions", r.requisitionHandler.CreateRequisition)

	r.mux.HandleFunc("GET /api/requisitions", r.requisitionHandler.ListRequisitions)

	r.mux.HandleFunc("GET /api/requisitions/latest/{patient_id}", r.requisitionHandler.GetLatestRequisition)

	r.mux.HandleFunc("GET /api/requisitions/{requisition_id}", r.requisitionHandler.GetRequisition)

	r.mux.HandleFunc("PATCH /api/requisitions/{requisition_id}", r.requisitionHandler.UpdateRequisition)

	r.mux.HandleFunc("PUT /api/requisitions/{requisition_id}/lab", r.requisitionHandler.AssignLab)
	r.mux.HandleFunc("POST /api/requisitions/{requisition_id}/fax", r.requisitionHandler.FaxRequisition)

	// Pharmacy endpoints

	r.mux.HandleFunc("POST /api/pharmacies", r.facilityHandler.CreatePharmacy)

	r.mux.HandleFunc("GET /api/pharmacies", r.facilityHandler.ListPharmacies)

	r.mux.HandleFunc("GET /api/pharmacies/nearest/{patient_id}", r.facilityHandler.GetNearestPharmacies)

	r.mux.HandleFunc("GET /api/pharmacies/{pharmacy_id}", r.facilityHandler.GetPharmacy)

	// Lab endpoints

	r.mux.HandleFunc("POST /api/labs", r.facilityHandler.CreateLab)

	r.mux.HandleFunc("GET /api/labs", r.facilityHandler.ListLabs)

	r.mux.HandleFunc("GET /api/labs/nearest/{patient_id}", r.facilityHandler.GetNearestLabs)

	r.mux.HandleFunc("GET /api/labs/{lab_id}", r.facilityHandler.GetLab)

	// Workflow endpoints

	r.mux.HandleFunc("POST /api/workflow", r.workflowHandler.RunWorkflow)

	r.mux.HandleFunc("POST /api/workflow/generate-orders", r.workflowHandler.GenerateOrders)

	r.mux.HandleFunc("POST /api/workflow/complete-prescription", r.workflowHandler.CompletePrescription)
	r.mux.HandleFunc("POST /api/workflow/complete-requisition", r.workflowHandler.CompleteRequisition)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so preflight requests never reach handlers.

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(r.logger)(handler)

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	handler = middleware.RequestIDMiddleware(handler)

	handler = middleware.CORSMiddleware(handler)

	return handler
}
