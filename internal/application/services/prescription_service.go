package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
	"github.com/clinicbridge/backend/internal/infrastructure/observability"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

// PrescriptionService proxies prescription forms, allocates their
// string sequence identifiers, and joins assigned pharmacies.
type PrescriptionService struct {
	store      providers.TableStore
	reconciler *Reconciler
}

// NewPrescriptionService creates a new prescription service.
func NewPrescriptionService(store providers.TableStore, reconciler *Reconciler) *PrescriptionService {
	return &PrescriptionService{store: store, reconciler: reconciler}
}

// Create allocates the next prescription_id and stores the form. The
// returned record is the payload as written, not the remote echo. Two
// concurrent creates can allocate the same id; the store keeps both.
func (s *PrescriptionService) Create(ctx context.Context, in *entities.PrescriptionCreate) (entities.Record, error) {
	if in.PatientID <= 0 {
		return nil, apperrors.NewValidationError("patient_id is required")
	}

	records, err := s.store.FetchAll(ctx, entities.TablePrescriptions)
	if err != nil {
		return nil, err
	}
	nextID := NextSequenceID(records, "prescription_id")

	payload, err := entities.EncodeRecord(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode prescription", err)
	}
	payload["prescription_id"] = nextID

	if _, err := s.store.Create(ctx, entities.TablePrescriptions, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// List returns a window over prescriptions, each joined with its
// assigned pharmacy's name and plain address.
func (s *PrescriptionService) List(ctx context.Context, skip, limit int) ([]entities.PrescriptionWithPharmacy, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePrescriptions)
	if err != nil {
		return nil, err
	}
	return s.joinPharmacies(ctx, window(records, skip, limit))
}

// Get returns one prescription with its pharmacy join.
func (s *PrescriptionService) Get(ctx context.Context, prescriptionID string) (*entities.PrescriptionWithPharmacy, error) {
	rec, err := fetchByID(ctx, s.store, entities.TablePrescriptions, "prescription_id", prescriptionID)
	if err != nil {
		return nil, err
	}
	joined, err := s.joinPharmacies(ctx, []entities.Record{rec})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// LatestByPatient returns the patient's most recent prescription,
// ordered by (date_prescribed, prescription_id) descending with a
// numeric id tie-break.
func (s *PrescriptionService) LatestByPatient(ctx context.Context, patientID int) (*entities.PrescriptionWithPharmacy, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePrescriptions)
	if err != nil {
		return nil, err
	}

	matched := filterByPatient(records, patientID)
	if len(matched) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no prescription found for patient %d", patientID))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		di, dj := matched[i].String("date_prescribed"), matched[j].String("date_prescribed")
		if di != dj {
			return di > dj
		}
		ni, _ := entities.AsInt(matched[i]["prescription_id"])
		nj, _ := entities.AsInt(matched[j]["prescription_id"])
		return ni > nj
	})

	joined, err := s.joinPharmacies(ctx, matched[:1])
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// Update applies a diff-based partial update to the clinical fields.
func (s *PrescriptionService) Update(ctx context.Context, prescriptionID string, in *entities.PrescriptionUpdate) (entities.Record, error) {
	return s.reconciler.Apply(ctx, entities.TablePrescriptions, "prescription_id", prescriptionID, in.Fields())
}

// AssignPharmacy sets the prescription's pharmacy foreign key. This is
// the only path that writes pharmacy_id.
func (s *PrescriptionService) AssignPharmacy(ctx context.Context, prescriptionID string, pharmacyID int) (entities.Record, error) {
	return s.reconciler.Apply(ctx, entities.TablePrescriptions, "prescription_id", prescriptionID,
		entities.Record{"pharmacy_id": pharmacyID})
}

// Fax simulates faxing the prescription to its assigned pharmacy.
func (s *PrescriptionService) Fax(ctx context.Context, prescriptionID string) (string, error) {
	rec, err := fetchByID(ctx, s.store, entities.TablePrescriptions, "prescription_id", prescriptionID)
	if err != nil {
		return "", err
	}

	pharmacyID, ok := rec.Int("pharmacy_id")
	if !ok {
		return "", apperrors.NewValidationError("prescription has no pharmacy assigned")
	}
	patientID, _ := rec.Int("patient_id")

	message := fmt.Sprintf("Fax sent for patient (ID: %d)'s prescription form (ID: %s) to pharmacy (ID: %d).",
		patientID, prescriptionID, pharmacyID)
	observability.LoggerFromContext(ctx).Info().
		Str("prescription_id", prescriptionID).
		Int("pharmacy_id", pharmacyID).
		Msg("prescription fax simulated")
	return message, nil
}

func (s *PrescriptionService) joinPharmacies(ctx context.Context, records []entities.Record) ([]entities.PrescriptionWithPharmacy, error) {
	pharmacies, err := s.store.FetchAll(ctx, entities.TablePharmacies)
	if err != nil {
		return nil, err
	}

	joined := make([]entities.PrescriptionWithPharmacy, 0, len(records))
	for _, rec := range records {
		var p entities.Prescription
		if err := entities.DecodeRecord(rec, &p); err != nil {
			continue
		}
		entry := entities.PrescriptionWithPharmacy{Prescription: p}
		if p.PharmacyID != nil {
			if pharmacy, ok := findFacility(pharmacies, "pharmacy_id", *p.PharmacyID); ok {
				name := pharmacy.String("name")
				entry.PharmacyName = &name
				entry.PharmacyAddress, _ = locateFacility(nil, pharmacy.String("address"))
			}
		}
		joined = append(joined, entry)
	}
	return joined, nil
}
