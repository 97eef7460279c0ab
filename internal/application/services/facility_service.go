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

// DefaultNearestLimit bounds nearest-facility queries.
const DefaultNearestLimit = 5

// FacilityService proxies pharmacy and lab registrations and ranks
// them by distance from a patient.
type FacilityService struct {
	store    providers.TableStore
	patients *PatientService
}

// NewFacilityService creates a new facility service.
func NewFacilityService(store providers.TableStore, patients *PatientService) *FacilityService {
	return &FacilityService{store: store, patients: patients}
}

// CreatePharmacy registers a new pharmacy.
func (s *FacilityService) CreatePharmacy(ctx context.Context, in *entities.FacilityCreate) (entities.Record, error) {
	return s.createFacility(ctx, entities.TablePharmacies, in)
}

// CreateLab registers a new lab.
func (s *FacilityService) CreateLab(ctx context.Context, in *entities.FacilityCreate) (entities.Record, error) {
	return s.createFacility(ctx, entities.TableLabs, in)
}

// ListPharmacies returns a window over registered pharmacies.
func (s *FacilityService) ListPharmacies(ctx context.Context, skip, limit int) ([]entities.Record, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePharmacies)
	if err != nil {
		return nil, err
	}
	return window(records, skip, limit), nil
}

// ListLabs returns a window over registered labs.
func (s *FacilityService) ListLabs(ctx context.Context, skip, limit int) ([]entities.Record, error) {
	records, err := s.store.FetchAll(ctx, entities.TableLabs)
	if err != nil {
		return nil, err
	}
	return window(records, skip, limit), nil
}

// GetPharmacy returns the pharmacy with the given id.
func (s *FacilityService) GetPharmacy(ctx context.Context, pharmacyID int) (*entities.Pharmacy, error) {
	rec, err := s.facilityByID(ctx, entities.TablePharmacies, "pharmacy_id", pharmacyID)
	if err != nil {
		return nil, err
	}
	var pharmacy entities.Pharmacy
	if err := entities.DecodeRecord(rec, &pharmacy); err != nil {
		return nil, apperrors.NewInternalError("failed to decode pharmacy", err)
	}
	return &pharmacy, nil
}

// GetLab returns the lab with the given id.
func (s *FacilityService) GetLab(ctx context.Context, labID int) (*entities.Lab, error) {
	rec, err := s.facilityByID(ctx, entities.TableLabs, "lab_id", labID)
	if err != nil {
		return nil, err
	}
	var lab entities.Lab
	if err := entities.DecodeRecord(rec, &lab); err != nil {
		return nil, apperrors.NewInternalError("failed to decode lab", err)
	}
	return &lab, nil
}

// NearestPharmacies ranks pharmacies by distance from the patient's
// address coordinates. A patient without usable coordinates gets an
// empty result, not an error; pharmacies without coordinates are
// discarded from the ranking.
func (s *FacilityService) NearestPharmacies(ctx context.Context, patientID, limit int) ([]entities.NearbyPharmacy, error) {
	origin, err := s.patients.Coordinates(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return []entities.NearbyPharmacy{}, nil
	}

	records, err := s.store.FetchAll(ctx, entities.TablePharmacies)
	if err != nil {
		return nil, err
	}

	plains, coords := parseFacilityAddresses(records)
	ranked := geo.Nearest(*origin, coords, normalizeLimit(limit))

	nearest := make([]entities.NearbyPharmacy, 0, len(ranked))
	for _, r := range ranked {
		rec := records[r.Index]
		id, _ := rec.Int("pharmacy_id")
		entry := entities.NearbyPharmacy{
			PharmacyID: id,
			Name:       rec.String("name"),
			Address:    plains[r.Index],
			DistanceKm: r.DistanceKm,
		}
		if phone := rec.String("phone_number"); phone != "" {
			entry.PhoneNumber = &phone
		}
		nearest = append(nearest, entry)
	}
	return nearest, nil
}

// NearestLabs is the lab counterpart of NearestPharmacies.
func (s *FacilityService) NearestLabs(ctx context.Context, patientID, limit int) ([]entities.NearbyLab, error) {
	origin, err := s.patients.Coordinates(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if origin == nil {
		return []entities.NearbyLab{}, nil
	}

	records, err := s.store.FetchAll(ctx, entities.TableLabs)
	if err != nil {
		return nil, err
	}

	plains, coords := parseFacilityAddresses(records)
	ranked := geo.Nearest(*origin, coords, normalizeLimit(limit))

	nearest := make([]entities.NearbyLab, 0, len(ranked))
	for _, r := range ranked {
		rec := records[r.Index]
		id, _ := rec.Int("lab_id")
		entry := entities.NearbyLab{
			LabID:      id,
			Name:       rec.String("name"),
			Address:    plains[r.Index],
			DistanceKm: r.DistanceKm,
		}
		if phone := rec.String("phone_number"); phone != "" {
			entry.PhoneNumber = &phone
		}
		nearest = append(nearest, entry)
	}
	return nearest, nil
}

func (s *FacilityService) createFacility(ctx context.Context, table string, in *entities.FacilityCreate) (entities.Record, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.NewValidationError("facility name is required")
	}

	payload, err := entities.EncodeRecord(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode facility", err)
	}

	created, err := s.store.Create(ctx, table, payload)
	if err != nil {
		return nil, err
	}
	return entities.UnwrapRecord(created), nil
}

func (s *FacilityService) facilityByID(ctx context.Context, table, idField string, id int) (entities.Record, error) {
	records, err := s.store.FetchAll(ctx, table)
	if err != nil {
		return nil, err
	}
	rec, ok := findFacility(records, idField, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %d not found", table, id))
	}
	return rec, nil
}

func parseFacilityAddresses(records []entities.Record) ([]string, []*geo.Coordinates) {
	plains := make([]string, len(records))
	coords := make([]*geo.Coordinates, len(records))
	for i, rec := range records {
		plains[i], coords[i] = geo.ParseAddress(rec.String("address"))
	}
	return plains, coords
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultNearestLimit
	}
	return limit
}
