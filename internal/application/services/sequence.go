package services

import (
	"strconv"

	"github.com/clinicbridge/backend/internal/domain/entities"
)

// NextSequenceID computes the next string identifier for a table by
// scanning its current records. The identifier is read from idField,
// falling back to the generic "id" field when idField is empty or
// unset; records whose identifier is missing or non-numeric are
// ignored. With no valid identifier at all the sequence starts at "1".
//
// This is a read-then-increment over a store with no atomic counter:
// two concurrent creations on the same table can compute the same
// identifier.
func NextSequenceID(records []entities.Record, idField string) string {
	maxID := 0
	for _, rec := range records {
		raw := rec[idField]
		if !truthy(raw) {
			raw = rec["id"]
		}
		id, ok := entities.AsInt(raw)
		if !ok {
			continue
		}
		if id > maxID {
			maxID = id
		}
	}
	if maxID > 0 {
		return strconv.Itoa(maxID + 1)
	}
	return "1"
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}
