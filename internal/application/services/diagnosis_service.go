package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

// DiagnosisService proxies diagnosis records.
type DiagnosisService struct {
	store providers.TableStore
}

// NewDiagnosisService creates a new diagnosis service.
func NewDiagnosisService(store providers.TableStore) *DiagnosisService {
	return &DiagnosisService{store: store}
}

// Create records a new diagnosis for a patient.
func (s *DiagnosisService) Create(ctx context.Context, in *entities.DiagnosisCreate) (entities.Record, error) {
	if in.PatientID <= 0 {
		return nil, apperrors.NewValidationError("patient_id is required")
	}

	payload, err := entities.EncodeRecord(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode diagnosis", err)
	}

	created, err := s.store.Create(ctx, entities.TableDiagnosis, payload)
	if err != nil {
		return nil, err
	}
	return entities.UnwrapRecord(created), nil
}

// ListByPatient returns every diagnosis belonging to a patient.
func (s *DiagnosisService) ListByPatient(ctx context.Context, patientID int) ([]entities.Diagnosis, error) {
	records, err := s.store.FetchAll(ctx, entities.TableDiagnosis)
	if err != nil {
		return nil, err
	}

	matched := filterByPatient(records, patientID)
	diagnoses := make([]entities.Diagnosis, 0, len(matched))
	for _, rec := range matched {
		var d entities.Diagnosis
		if err := entities.DecodeRecord(rec, &d); err != nil {
			continue
		}
		diagnoses = append(diagnoses, d)
	}
	return diagnoses, nil
}

// LatestByPatient returns the patient's most recent diagnosis, ordered
// by (diagnosis_date, diagnosis_id) descending with a numeric id
// tie-break.
func (s *DiagnosisService) LatestByPatient(ctx context.Context, patientID int) (*entities.Diagnosis, error) {
	diagnoses, err := s.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if len(diagnoses) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no diagnosis found for patient %d", patientID))
	}

	sort.SliceStable(diagnoses, func(i, j int) bool {
		di, dj := dateOrEmpty(diagnoses[i].DiagnosisDate), dateOrEmpty(diagnoses[j].DiagnosisDate)
		if di != dj {
			return di > dj
		}
		return diagnoses[i].DiagnosisID > diagnoses[j].DiagnosisID
	})
	return &diagnoses[0], nil
}

func dateOrEmpty(d *string) string {
	if d == nil {
		return ""
	}
	return *d
}
