package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/clinicbridge/backend/internal/application/tools"
	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

const orderDateLayout = "2006-01-02"

// prescriptionExpiryDays is how long a generated prescription stays
// valid past its issue date.
const prescriptionExpiryDays = 30

// WorkflowService orchestrates the inference-backed clinical
// workflows: generating orders from a patient's latest diagnosis and
// completing existing order forms against it. All tool execution goes
// through the registry so the dispatch surface stays explicit.
type WorkflowService struct {
	store         providers.TableStore
	inference     providers.InferenceProvider
	diagnoses     *DiagnosisService
	prescriptions *PrescriptionService
	requisitions  *RequisitionService
	registry      *tools.Registry
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(
	store providers.TableStore,
	inference providers.InferenceProvider,
	diagnoses *DiagnosisService,
	prescriptions *PrescriptionService,
	requisitions *RequisitionService,
	registry *tools.Registry,
) *WorkflowService {
	return &WorkflowService{
		store:         store,
		inference:     inference,
		diagnoses:     diagnoses,
		prescriptions: prescriptions,
		requisitions:  requisitions,
		registry:      registry,
	}
}

// RegisterTools binds every workflow tool into the registry. Called
// once at startup; a duplicate registration surfaces as an error.
func (s *WorkflowService) RegisterTools() error {
	bindings := map[string]tools.Handler{
		ToolCreatePrescription:   s.toolCreatePrescription,
		ToolCreateRequisition:    s.toolCreateRequisition,
		ToolGenerateOrders:       s.toolGenerateOrders,
		ToolCompletePrescription: s.toolCompletePrescription,
		ToolCompleteRequisition:  s.toolCompleteRequisition,
	}
	for name, handler := range bindings {
		if err := s.registry.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch executes a named tool with structured arguments. This backs
// the generic workflow endpoint, which is not a chat interface.
func (s *WorkflowService) Dispatch(ctx context.Context, tool string, args map[string]any) (any, error) {
	return s.registry.Dispatch(ctx, tool, args)
}

// GenerateOrders designs and stores one prescription and one
// requisition for the patient's latest diagnosis. The two creates run
// in order with no compensation: a requisition failure leaves the
// already-created prescription in place.
func (s *WorkflowService) GenerateOrders(ctx context.Context, patientID int) (*entities.GeneratedOrders, error) {
	diagnosis, err := s.latestUsableDiagnosis(ctx, patientID)
	if err != nil {
		return nil, err
	}

	call, err := s.inference.InvokeTool(ctx,
		orchestratorSystemPrompt,
		fmt.Sprintf("Design a prescription and a lab requisition for this diagnosis: %s", diagnosis.Description()),
		generateOrdersTool())
	if err != nil {
		return nil, err
	}

	var design struct {
		Prescription entities.PrescriptionUpdate `json:"prescription"`
		Requisition  entities.RequisitionUpdate  `json:"requisition"`
	}
	if err := json.Unmarshal(call.Arguments, &design); err != nil {
		return nil, apperrors.NewInferenceError("order design does not match schema", err)
	}

	today := time.Now().Format(orderDateLayout)
	expiry := time.Now().AddDate(0, 0, prescriptionExpiryDays).Format(orderDateLayout)

	prescriptionArgs := design.Prescription.Fields()
	prescriptionArgs["patient_id"] = patientID
	prescriptionArgs["pharmacy_id"] = nil
	prescriptionArgs["date_prescribed"] = today
	prescriptionArgs["expiry_date"] = expiry

	requisitionArgs := design.Requisition.Fields()
	requisitionArgs["patient_id"] = patientID
	requisitionArgs["lab_id"] = nil
	requisitionArgs["date_requested"] = today

	created, err := s.registry.Dispatch(ctx, ToolCreatePrescription, prescriptionArgs)
	if err != nil {
		return nil, err
	}
	prescription, err := decodeDispatched[entities.Prescription](created)
	if err != nil {
		return nil, err
	}

	created, err = s.registry.Dispatch(ctx, ToolCreateRequisition, requisitionArgs)
	if err != nil {
		return nil, err
	}
	requisition, err := decodeDispatched[entities.Requisition](created)
	if err != nil {
		return nil, err
	}

	return &entities.GeneratedOrders{
		PatientID:    patientID,
		Diagnosis:    *diagnosis,
		Prescription: *prescription,
		Requisition:  *requisition,
	}, nil
}

// CompletePrescription fills in the clinical fields of an existing
// prescription from the patient's latest diagnosis. The pharmacy
// foreign key is outside the inference schema entirely; if the stored
// value still drifts from its pre-update state, it is forcibly
// restored before returning.
func (s *WorkflowService) CompletePrescription(ctx context.Context, patientID int, prescriptionID string) (*entities.Prescription, error) {
	diagnosis, err := s.latestUsableDiagnosis(ctx, patientID)
	if err != nil {
		return nil, err
	}

	current, err := fetchByID(ctx, s.store, entities.TablePrescriptions, "prescription_id", prescriptionID)
	if err != nil {
		return nil, err
	}
	capturedFK, hadFK := current.Int("pharmacy_id")

	call, err := s.inference.InvokeTool(ctx,
		orchestratorSystemPrompt,
		completionPrompt("prescription", current, diagnosis),
		completePrescriptionTool())
	if err != nil {
		return nil, err
	}

	var update entities.PrescriptionUpdate
	if err := json.Unmarshal(call.Arguments, &update); err != nil {
		return nil, apperrors.NewInferenceError("prescription completion does not match schema", err)
	}

	reconciler := NewReconciler(s.store)
	updated, err := reconciler.Apply(ctx, entities.TablePrescriptions, "prescription_id", prescriptionID, update.Fields())
	if err != nil {
		return nil, err
	}

	updated, err = s.restoreForeignKey(ctx, entities.TablePrescriptions, "prescription_id", prescriptionID,
		"pharmacy_id", capturedFK, hadFK, updated)
	if err != nil {
		return nil, err
	}

	var prescription entities.Prescription
	if err := entities.DecodeRecord(updated, &prescription); err != nil {
		return nil, apperrors.NewInternalError("failed to decode prescription", err)
	}
	return &prescription, nil
}

// CompleteRequisition is the requisition counterpart of
// CompletePrescription, protecting the lab foreign key.
func (s *WorkflowService) CompleteRequisition(ctx context.Context, patientID int, requisitionID string) (*entities.Requisition, error) {
	diagnosis, err := s.latestUsableDiagnosis(ctx, patientID)
	if err != nil {
		return nil, err
	}

	current, err := fetchByID(ctx, s.store, entities.TableRequisitions, "requisition_id", requisitionID)
	if err != nil {
		return nil, err
	}
	capturedFK, hadFK := current.Int("lab_id")

	call, err := s.inference.InvokeTool(ctx,
		orchestratorSystemPrompt,
		completionPrompt("requisition", current, diagnosis),
		completeRequisitionTool())
	if err != nil {
		return nil, err
	}

	var update entities.RequisitionUpdate
	if err := json.Unmarshal(call.Arguments, &update); err != nil {
		return nil, apperrors.NewInferenceError("requisition completion does not match schema", err)
	}

	reconciler := NewReconciler(s.store)
	updated, err := reconciler.Apply(ctx, entities.TableRequisitions, "requisition_id", requisitionID, update.Fields())
	if err != nil {
		return nil, err
	}

	updated, err = s.restoreForeignKey(ctx, entities.TableRequisitions, "requisition_id", requisitionID,
		"lab_id", capturedFK, hadFK, updated)
	if err != nil {
		return nil, err
	}

	var requisition entities.Requisition
	if err := entities.DecodeRecord(updated, &requisition); err != nil {
		return nil, apperrors.NewInternalError("failed to decode requisition", err)
	}
	return &requisition, nil
}

// latestUsableDiagnosis returns the patient's most recent diagnosis,
// demanding a non-empty description to ground the inference on.
func (s *WorkflowService) latestUsableDiagnosis(ctx context.Context, patientID int) (*entities.Diagnosis, error) {
	diagnosis, err := s.diagnoses.LatestByPatient(ctx, patientID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewPreconditionError(fmt.Sprintf("no diagnosis on file for patient %d", patientID))
		}
		return nil, err
	}
	if diagnosis.Description() == "" {
		return nil, apperrors.NewPreconditionError(fmt.Sprintf("latest diagnosis for patient %d has no description", patientID))
	}
	return diagnosis, nil
}

// restoreForeignKey writes the captured pre-update foreign key back if
// the stored value drifted, then re-reads the record.
func (s *WorkflowService) restoreForeignKey(ctx context.Context, table, idField, id, fkField string, captured int, hadFK bool, updated entities.Record) (entities.Record, error) {
	got, has := updated.Int(fkField)
	if has == hadFK && (!hadFK || got == captured) {
		return updated, nil
	}

	var restore any
	if hadFK {
		restore = captured
	}
	if _, err := s.store.Update(ctx, table, id, entities.Record{fkField: restore}); err != nil {
		return nil, err
	}
	return fetchByID(ctx, s.store, table, idField, id)
}

func (s *WorkflowService) toolCreatePrescription(ctx context.Context, args map[string]any) (any, error) {
	var in entities.PrescriptionCreate
	if err := entities.DecodeRecord(args, &in); err != nil {
		return nil, apperrors.NewValidationError("invalid prescription arguments")
	}
	return s.prescriptions.Create(ctx, &in)
}

func (s *WorkflowService) toolCreateRequisition(ctx context.Context, args map[string]any) (any, error) {
	var in entities.RequisitionCreate
	if err := entities.DecodeRecord(args, &in); err != nil {
		return nil, apperrors.NewValidationError("invalid requisition arguments")
	}
	return s.requisitions.Create(ctx, &in)
}

func (s *WorkflowService) toolGenerateOrders(ctx context.Context, args map[string]any) (any, error) {
	patientID, ok := entities.Record(args).Int("patient_id")
	if !ok {
		return nil, apperrors.NewValidationError("patient_id is required")
	}
	return s.GenerateOrders(ctx, patientID)
}

func (s *WorkflowService) toolCompletePrescription(ctx context.Context, args map[string]any) (any, error) {
	patientID, ok := entities.Record(args).Int("patient_id")
	if !ok {
		return nil, apperrors.NewValidationError("patient_id is required")
	}
	prescriptionID := entities.Record(args).String("prescription_id")
	if prescriptionID == "" {
		return nil, apperrors.NewValidationError("prescription_id is required")
	}
	return s.CompletePrescription(ctx, patientID, prescriptionID)
}

func (s *WorkflowService) toolCompleteRequisition(ctx context.Context, args map[string]any) (any, error) {
	patientID, ok := entities.Record(args).Int("patient_id")
	if !ok {
		return nil, apperrors.NewValidationError("patient_id is required")
	}
	requisitionID := entities.Record(args).String("requisition_id")
	if requisitionID == "" {
		return nil, apperrors.NewValidationError("requisition_id is required")
	}
	return s.CompleteRequisition(ctx, patientID, requisitionID)
}

// completionPrompt renders the current form state and the grounding
// diagnosis for a completion call.
func completionPrompt(kind string, current entities.Record, diagnosis *entities.Diagnosis) string {
	state, _ := json.Marshal(current)
	return fmt.Sprintf("Complete this %s form based on the diagnosis.\nDiagnosis: %s\nCurrent form: %s",
		kind, diagnosis.Description(), state)
}

// decodeDispatched narrows a registry result back to its typed record.
func decodeDispatched[T any](result any) (*T, error) {
	rec, ok := result.(entities.Record)
	if !ok {
		return nil, apperrors.NewInternalError("unexpected tool result shape", nil)
	}
	var out T
	if err := entities.DecodeRecord(rec, &out); err != nil {
		return nil, apperrors.NewInternalError("failed to decode tool result", err)
	}
	return &out, nil
}
