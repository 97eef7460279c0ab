package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

// findByID scans records for the one whose identifier (idField, or the
// generic "id" fallback) matches id under string comparison. The store
// cannot filter, so every lookup is a whole-table scan on our side.
func findByID(records []entities.Record, idField, id string) (entities.Record, bool) {
	for _, rec := range records {
		if rec.HasID(idField, id) {
			return rec, true
		}
	}
	return nil, false
}

// fetchByID fetches a table and returns the record matching id, or a
// not-found error.
func fetchByID(ctx context.Context, store providers.TableStore, table, idField, id string) (entities.Record, error) {
	records, err := store.FetchAll(ctx, table)
	if err != nil {
		return nil, err
	}
	rec, ok := findByID(records, idField, id)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %s not found", table, id))
	}
	return rec, nil
}

// filterByPatient keeps the records belonging to patientID.
func filterByPatient(records []entities.Record, patientID int) []entities.Record {
	matched := make([]entities.Record, 0, len(records))
	for _, rec := range records {
		if id, ok := rec.Int("patient_id"); ok && id == patientID {
			matched = append(matched, rec)
		}
	}
	return matched
}

// window applies client-side skip/limit pagination; the store supports
// no query parameters.
func window(records []entities.Record, skip, limit int) []entities.Record {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(records) {
		return []entities.Record{}
	}
	end := len(records)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return records[skip:end]
}

// jsonEqual compares two values by their canonical JSON encoding, so a
// stored float64(7) and a requested int 7 compare equal.
func jsonEqual(a, b any) bool {
	rawA, errA := json.Marshal(a)
	rawB, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(rawA) == string(rawB)
}
