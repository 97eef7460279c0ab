package services

import (
	"context"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
	"github.com/clinicbridge/backend/pkg/geo"
)

// PreferenceService proxies patient facility preferences.
type PreferenceService struct {
	store providers.TableStore
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(store providers.TableStore) *PreferenceService {
	return &PreferenceService{store: store}
}

// Create records a patient preference. A preference targets exactly
// one facility matching its type; anything else is rejected before any
// remote call is made.
func (s *PreferenceService) Create(ctx context.Context, in *entities.PreferenceCreate) (entities.Record, error) {
	if err := validatePreference(in); err != nil {
		return nil, err
	}

	payload, err := entities.EncodeRecord(in)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode preference", err)
	}

	created, err := s.store.Create(ctx, entities.TablePreferences, payload)
	if err != nil {
		return nil, err
	}
	return entities.UnwrapRecord(created), nil
}

// List returns a window over all preferences.
func (s *PreferenceService) List(ctx context.Context, skip, limit int) ([]entities.Record, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePreferences)
	if err != nil {
		return nil, err
	}
	return window(records, skip, limit), nil
}

// SlimByPatientAndType returns the patient's preferences of the given
// type, trimmed to the targeted facility id and the note. Preferences
// without a target are skipped.
func (s *PreferenceService) SlimByPatientAndType(ctx context.Context, patientID int, preferenceType string) ([]entities.SlimPreference, error) {
	if preferenceType != entities.PreferenceTypePharmacy && preferenceType != entities.PreferenceTypeLab {
		return nil, apperrors.NewValidationError("preference_type must be 'pharmacy' or 'lab'")
	}

	matched, err := s.byPatientAndType(ctx, patientID, preferenceType)
	if err != nil {
		return nil, err
	}

	targetField := "pharmacy_id"
	if preferenceType == entities.PreferenceTypeLab {
		targetField = "lab_id"
	}

	slim := make([]entities.SlimPreference, 0, len(matched))
	for _, rec := range matched {
		target, ok := rec.Int(targetField)
		if !ok {
			continue
		}
		entry := entities.SlimPreference{TargetID: target}
		if notes := rec.String("notes"); notes != "" {
			entry.Notes = &notes
		}
		slim = append(slim, entry)
	}
	return slim, nil
}

// DetailedPharmacyPreferences returns the patient's pharmacy
// preferences enriched with the facility record, its plain address and
// the distance from the patient. Candidates without usable coordinates
// are kept with a nil distance.
func (s *PreferenceService) DetailedPharmacyPreferences(ctx context.Context, patientID int) ([]entities.PreferredPharmacy, error) {
	matched, err := s.byPatientAndType(ctx, patientID, entities.PreferenceTypePharmacy)
	if err != nil {
		return nil, err
	}

	origin, err := s.patientCoordinates(ctx, patientID)
	if err != nil {
		return nil, err
	}

	pharmacies, err := s.store.FetchAll(ctx, entities.TablePharmacies)
	if err != nil {
		return nil, err
	}

	detailed := make([]entities.PreferredPharmacy, 0, len(matched))
	for _, pref := range matched {
		targetID, ok := pref.Int("pharmacy_id")
		if !ok {
			continue
		}
		rec, found := findFacility(pharmacies, "pharmacy_id", targetID)
		if !found {
			continue
		}

		var pharmacy entities.Pharmacy
		if err := entities.DecodeRecord(rec, &pharmacy); err != nil {
			continue
		}

		plain, distance := locateFacility(origin, rec.String("address"))
		entry := entities.PreferredPharmacy{
			Pharmacy:   pharmacy,
			Address:    plain,
			DistanceKm: distance,
		}
		if notes := pref.String("notes"); notes != "" {
			entry.Notes = &notes
		}
		detailed = append(detailed, entry)
	}
	return detailed, nil
}

// DetailedLabPreferences is the lab counterpart of
// DetailedPharmacyPreferences.
func (s *PreferenceService) DetailedLabPreferences(ctx context.Context, patientID int) ([]entities.PreferredLab, error) {
	matched, err := s.byPatientAndType(ctx, patientID, entities.PreferenceTypeLab)
	if err != nil {
		return nil, err
	}

	origin, err := s.patientCoordinates(ctx, patientID)
	if err != nil {
		return nil, err
	}

	labs, err := s.store.FetchAll(ctx, entities.TableLabs)
	if err != nil {
		return nil, err
	}

	detailed := make([]entities.PreferredLab, 0, len(matched))
	for _, pref := range matched {
		targetID, ok := pref.Int("lab_id")
		if !ok {
			continue
		}
		rec, found := findFacility(labs, "lab_id", targetID)
		if !found {
			continue
		}

		var lab entities.Lab
		if err := entities.DecodeRecord(rec, &lab); err != nil {
			continue
		}

		plain, distance := locateFacility(origin, rec.String("address"))
		entry := entities.PreferredLab{
			Lab:        lab,
			Address:    plain,
			DistanceKm: distance,
		}
		if notes := pref.String("notes"); notes != "" {
			entry.Notes = &notes
		}
		detailed = append(detailed, entry)
	}
	return detailed, nil
}

func (s *PreferenceService) byPatientAndType(ctx context.Context, patientID int, preferenceType string) ([]entities.Record, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePreferences)
	if err != nil {
		return nil, err
	}

	matched := make([]entities.Record, 0, len(records))
	for _, rec := range filterByPatient(records, patientID) {
		if rec.String("preference_type") == preferenceType {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (s *PreferenceService) patientCoordinates(ctx context.Context, patientID int) (*geo.Coordinates, error) {
	records, err := s.store.FetchAll(ctx, entities.TablePatients)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if id, ok := rec.Int("patient_id"); ok && id == patientID {
			_, coords := geo.ParseAddress(rec.String("contact_info"))
			return coords, nil
		}
	}
	return nil, nil
}

func validatePreference(in *entities.PreferenceCreate) error {
	if in.PatientID <= 0 {
		return apperrors.NewValidationError("patient_id is required")
	}

	switch in.PreferenceType {
	case entities.PreferenceTypePharmacy:
		if in.PharmacyID == nil {
			return apperrors.NewValidationError("pharmacy_id is required when preference_type is 'pharmacy'")
		}
		if in.LabID != nil {
			return apperrors.NewValidationError("lab_id must be empty when preference_type is 'pharmacy'")
		}
	case entities.PreferenceTypeLab:
		if in.LabID == nil {
			return apperrors.NewValidationError("lab_id is required when preference_type is 'lab'")
		}
		if in.PharmacyID != nil {
			return apperrors.NewValidationError("pharmacy_id must be empty when preference_type is 'lab'")
		}
	default:
		return apperrors.NewValidationError("preference_type must be 'pharmacy' or 'lab'")
	}
	return nil
}

// findFacility matches a facility record by its typed id field with
// the generic "id" fallback.
func findFacility(records []entities.Record, idField string, id int) (entities.Record, bool) {
	for _, rec := range records {
		if got, ok := rec.Int(idField); ok && got == id {
			return rec, true
		}
		if got, ok := rec.Int("id"); ok && got == id {
			return rec, true
		}
	}
	return nil, false
}

// locateFacility parses a facility's composite address, returning the
// plain half and the rounded distance from origin when both sides have
// coordinates.
func locateFacility(origin *geo.Coordinates, composite string) (*string, *float64) {
	plain, coords := geo.ParseAddress(composite)

	var plainPtr *string
	if plain != "" {
		plainPtr = &plain
	}
	if origin == nil || coords == nil {
		return plainPtr, nil
	}
	distance := geo.Round2(geo.DistanceKm(*origin, *coords))
	return plainPtr, &distance
}
