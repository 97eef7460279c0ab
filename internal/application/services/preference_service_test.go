package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

func intPtr(v int) *int { return &v }

func TestPreferenceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("both facility ids rejected before any remote call", func(t *testing.T) {
		store := new(MockTableStore)
		service := services.NewPreferenceService(store)

		_, err := service.Create(ctx, &entities.PreferenceCreate{
			PatientID:      1,
			PreferenceType: entities.PreferenceTypePharmacy,
			PharmacyID:     intPtr(3),
			LabID:          intPtr(4),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "FetchAll", mock.Anything, mock.Anything)
	})

	t.Run("pharmacy preference with lab id rejected", func(t *testing.T) {
		store := new(MockTableStore)
		service := services.NewPreferenceService(store)

		_, err := service.Create(ctx, &entities.PreferenceCreate{
			PatientID:      1,
			PreferenceType: entities.PreferenceTypePharmacy,
			LabID:          intPtr(4),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown preference type rejected", func(t *testing.T) {
		store := new(MockTableStore)
		service := services.NewPreferenceService(store)

		_, err := service.Create(ctx, &entities.PreferenceCreate{
			PatientID:      1,
			PreferenceType: "clinic",
			PharmacyID:     intPtr(3),
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("valid lab preference is stored", func(t *testing.T) {
		store := new(MockTableStore)
		service := services.NewPreferenceService(store)
		store.On("Create", ctx, entities.TablePreferences, mock.Anything).
			Return(entities.Record{"preference_id": float64(9)}, nil).Once()

		created, err := service.Create(ctx, &entities.PreferenceCreate{
			PatientID:      1,
			PreferenceType: entities.PreferenceTypeLab,
			LabID:          intPtr(4),
		})
		require.NoError(t, err)
		id, ok := created.Int("preference_id")
		require.True(t, ok)
		assert.Equal(t, 9, id)
		store.AssertExpectations(t)
	})
}

func TestPreferenceService_SlimByPatientAndType(t *testing.T) {
	ctx := context.Background()
	store := new(MockTableStore)
	service := services.NewPreferenceService(store)
	store.On("FetchAll", ctx, entities.TablePreferences).Return([]entities.Record{
		{"patient_id": float64(1), "preference_type": "pharmacy", "pharmacy_id": float64(3), "notes": "open late"},
		{"patient_id": float64(1), "preference_type": "pharmacy", "pharmacy_id": nil},
		{"patient_id": float64(1), "preference_type": "lab", "lab_id": float64(8)},
		{"patient_id": float64(2), "preference_type": "pharmacy", "pharmacy_id": float64(5)},
	}, nil).Once()

	slim, err := service.SlimByPatientAndType(ctx, 1, entities.PreferenceTypePharmacy)
	require.NoError(t, err)
	require.Len(t, slim, 1)
	assert.Equal(t, 3, slim[0].TargetID)
	require.NotNil(t, slim[0].Notes)
	assert.Equal(t, "open late", *slim[0].Notes)
}
