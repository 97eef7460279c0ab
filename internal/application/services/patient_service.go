package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
	"github.com/clinicbridge/backend/pkg/geo"
)

// PatientService proxies patient registration records.
type PatientService struct {
	store providers.TableStore
}

// NewPatientService creates a new patient service.
func NewPatientService(store providers.TableStore) *PatientService {
	return &PatientService{store: store}
}

// Create registers a new patient.
func (s *PatientService) Create(ctx context.Context, in *entities.PatientCreate) (entities.Record, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.NewValidationError("patient name is required")
	}

	payload, err := entities.EncodeRecord(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode patient", err)
	}

	created, err := s.store.Create(ctx, entities.TablePatients, payload)
	if err != nil {
		return nil, err
	}
	return entities.UnwrapRecord(created), nil
}

// List returns a window over all registered patients.
func (s *PatientService) List(ctx context.Context, skip, limit int) ([]entities.Record, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePatients)
	if err != nil {
		return nil, err
	}
	return window(records, skip, limit), nil
}

// Get returns the patient with the given id.
func (s *PatientService) Get(ctx context.Context, patientID int) (*entities.Patient, error) {
	rec, err := s.record(ctx, patientID)
	if err != nil {
		return nil, err
	}

	var patient entities.Patient
	if err := entities.DecodeRecord(rec, &patient); err != nil {
		return nil, apperrors.NewInternalError("failed to decode patient", err)
	}
	return &patient, nil
}

// Coordinates returns the patient's coordinates parsed from the
// composite contact_info address, or nil when none are usable.
func (s *PatientService) Coordinates(ctx context.Context, patientID int) (*geo.Coordinates, error) {
	rec, err := s.record(ctx, patientID)
	if err != nil {
		return nil, err
	}
	_, coords := geo.ParseAddress(rec.String("contact_info"))
	return coords, nil
}

func (s *PatientService) record(ctx context.Context, patientID int) (entities.Record, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePatients)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if id, ok := rec.Int("patient_id"); ok && id == patientID {
			return rec, nil
		}
		if id, ok := rec.Int("id"); ok && id == patientID {
			return rec, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient %d not found", patientID))
}
