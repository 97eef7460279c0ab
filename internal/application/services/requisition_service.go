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

// RequisitionService proxies requisition forms, allocates their string
// sequence identifiers, and joins assigned labs.
type RequisitionService struct {
	store      providers.TableStore
	reconciler *Reconciler
}

// NewRequisitionService creates a new requisition service.
func NewRequisitionService(store providers.TableStore, reconciler *Reconciler) *RequisitionService {
	return &RequisitionService{store: store, reconciler: reconciler}
}

// Create allocates the next requisition_id and stores the form. The
// returned record is the payload as written, not the remote echo.
func (s *RequisitionService) Create(ctx context.Context, in *entities.RequisitionCreate) (entities.Record, error) {
	if in.PatientID <= 0 {
		return nil, apperrors.NewValidationError("patient_id is required")
	}

	records, err := s.store.FetchAll(ctx, entities.TableRequisitions)
	if err != nil {
		return nil, err
	}
	nextID := NextSequenceID(records, "requisition_id")

	payload, err := entities.EncodeRecord(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode requisition", err)
	}
	payload["requisition_id"] = nextID

	if _, err := s.store.Create(ctx, entities.TableRequisitions, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// List returns a window over requisitions, each joined with its
// assigned lab's name and plain address.
func (s *RequisitionService) List(ctx context.Context, skip, limit int) ([]entities.RequisitionWithLab, error) {
	records, err := s.store.FetchAll(ctx, entities.TableRequisitions)
	if err != nil {
		return nil, err
	}
	return s.joinLabs(ctx, window(records, skip, limit))
}

// Get returns one requisition with its lab join.
func (s *RequisitionService) Get(ctx context.Context, requisitionID string) (*entities.RequisitionWithLab, error) {
	rec, err := fetchByID(ctx, s.store, entities.TableRequisitions, "requisition_id", requisitionID)
	if err != nil {
		return nil, err
	}
	joined, err := s.joinLabs(ctx, []entities.Record{rec})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// LatestByPatient returns the patient's most recent requisition,
// ordered by (date_requested, requisition_id) descending with a
// numeric id tie-break.
func (s *RequisitionService) LatestByPatient(ctx context.Context, patientID int) (*entities.RequisitionWithLab, error) {
	records, err := s.store.FetchAll(ctx, entities.TableRequisitions)
	if err != nil {
		return nil, err
	}

	matched := filterByPatient(records, patientID)
	if len(matched) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no requisition found for patient %d", patientID))
	}

	sort.SliceStable(matched, func(i, j int) bool {
		di, dj := matched[i].String("date_requested"), matched[j].String("date_requested")
		if di != dj {
			return di > dj
		}
		ni, _ := entities.AsInt(matched[i]["requisition_id"])
		nj, _ := entities.AsInt(matched[j]["requisition_id"])
		return ni > nj
	})

	joined, err := s.joinLabs(ctx, matched[:1])
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

// Update applies a diff-based partial update to the clinical fields.
func (s *RequisitionService) Update(ctx context.Context, requisitionID string, in *entities.RequisitionUpdate) (entities.Record, error) {
	return s.reconciler.Apply(ctx, entities.TableRequisitions, "requisition_id", requisitionID, in.Fields())
}

// AssignLab sets the requisition's lab foreign key. This is the only
// path that writes lab_id.
func (s *RequisitionService) AssignLab(ctx context.Context, requisitionID string, labID int) (entities.Record, error) {
	return s.reconciler.Apply(ctx, entities.TableRequisitions, "requisition_id", requisitionID,
		entities.Record{"lab_id": labID})
}

// Fax simulates faxing the requisition to its assigned lab.
func (s *RequisitionService) Fax(ctx context.Context, requisitionID string) (string, error) {
	rec, err := fetchByID(ctx, s.store, entities.TableRequisitions, "requisition_id", requisitionID)
	if err != nil {
		return "", err
	}

	labID, ok := rec.Int("lab_id")
	if !ok {
		return "", apperrors.NewValidationError("requisition has no lab assigned")
	}
	patientID, _ := rec.Int("patient_id")

	message := fmt.Sprintf("Fax sent for patient (ID: %d)'s requisition form (ID: %s) to lab (ID: %d).",
		patientID, requisitionID, labID)
	observability.LoggerFromContext(ctx).Info().
		Str("requisition_id", requisitionID).
		Int("lab_id", labID).
		Msg("requisition fax simulated")
	return message, nil
}

func (s *RequisitionService) joinLabs(ctx context.Context, records []entities.Record) ([]entities.RequisitionWithLab, error) {
	labs, err := s.store.FetchAll(ctx, entities.TableLabs)
	if err != nil {
		return nil, err
	}

	joined := make([]entities.RequisitionWithLab, 0, len(records))
	for _, rec := range records {
		var r entities.Requisition
		if err := entities.DecodeRecord(rec, &r); err != nil {
			continue
		}
		entry := entities.RequisitionWithLab{Requisition: r}
		if r.LabID != nil {
			if lab, ok := findFacility(labs, "lab_id", *r.LabID); ok {
				name := lab.String("name")
				entry.LabName = &name
				entry.LabAddress, _ = locateFacility(nil, lab.String("address"))
			}
		}
		joined = append(joined, entry)
	}
	return joined, nil
}
