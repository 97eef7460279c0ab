package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

func TestDiagnosisService_LatestByPatient(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by date with numeric id tie-break", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TableDiagnosis).Return([]entities.Record{
			{"diagnosis_id": float64(1), "patient_id": float64(1), "diagnosis_date": "2026-01-10"},
			{"diagnosis_id": float64(3), "patient_id": float64(1), "diagnosis_date": "2026-02-01"},
			{"diagnosis_id": float64(5), "patient_id": float64(1), "diagnosis_date": "2026-02-01"},
			{"diagnosis_id": float64(9), "patient_id": float64(2), "diagnosis_date": "2026-03-01"},
		}, nil).Once()

		latest, err := services.NewDiagnosisService(store).LatestByPatient(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 5, latest.DiagnosisID)
	})

	t.Run("no diagnoses is not found", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TableDiagnosis).Return([]entities.Record{}, nil).Once()

		_, err := services.NewDiagnosisService(store).LatestByPatient(ctx, 1)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})
}

func TestDiagnosisService_Create(t *testing.T) {
	ctx := context.Background()
	store := new(MockTableStore)

	_, err := services.NewDiagnosisService(store).Create(ctx, &entities.DiagnosisCreate{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
