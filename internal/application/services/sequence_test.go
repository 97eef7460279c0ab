package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
)

func TestNextSequenceID(t *testing.T) {
	t.Run("returns max plus one over mixed id shapes", func(t *testing.T) {
		records := []entities.Record{
			{"prescription_id": "3"},
			{"prescription_id": "7"},
			{"prescription_id": "x"},
			{"id": float64(2)},
		}

		assert.Equal(t, "8", services.NextSequenceID(records, "prescription_id"))
	})

	t.Run("empty table starts at one", func(t *testing.T) {
		assert.Equal(t, "1", services.NextSequenceID(nil, "prescription_id"))
	})

	t.Run("non-numeric ids only also start at one", func(t *testing.T) {
		records := []entities.Record{
			{"requisition_id": "abc"},
			{"requisition_id": ""},
		}

		assert.Equal(t, "1", services.NextSequenceID(records, "requisition_id"))
	})

	t.Run("falls back to generic id when typed id is empty", func(t *testing.T) {
		records := []entities.Record{
			{"requisition_id": "", "id": "41"},
		}

		assert.Equal(t, "42", services.NextSequenceID(records, "requisition_id"))
	})
}
