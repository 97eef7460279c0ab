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

const torontoPatient = `100 Queen St W, Toronto||{"lat": 43.6532, "lng": -79.3832}`

func newFacilityService(store *MockTableStore) *services.FacilityService {
	return services.NewFacilityService(store, services.NewPatientService(store))
}

func TestFacilityService_NearestPharmacies(t *testing.T) {
	ctx := context.Background()

	t.Run("ranks by distance and drops coordless candidates", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TablePatients).Return([]entities.Record{
			{"patient_id": float64(1), "contact_info": torontoPatient},
		}, nil).Once()
		store.On("FetchAll", ctx, entities.TablePharmacies).Return([]entities.Record{
			{"pharmacy_id": float64(1), "name": "Far", "address": `Ottawa||{"lat": 45.4215, "lng": -75.6972}`},
			{"pharmacy_id": float64(2), "name": "Near", "address": `Downtown||{"lat": 43.6540, "lng": -79.3800}`},
			{"pharmacy_id": float64(3), "name": "NoCoords", "address": "Somewhere"},
		}, nil).Once()

		nearest, err := newFacilityService(store).NearestPharmacies(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, nearest, 2)
		assert.Equal(t, 2, nearest[0].PharmacyID)
		assert.Equal(t, "Downtown", nearest[0].Address)
		assert.Equal(t, 1, nearest[1].PharmacyID)
		assert.Less(t, nearest[0].DistanceKm, nearest[1].DistanceKm)
	})

	t.Run("patient without coordinates gets an empty result", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TablePatients).Return([]entities.Record{
			{"patient_id": float64(1), "contact_info": "100 Queen St W, Toronto"},
		}, nil).Once()

		nearest, err := newFacilityService(store).NearestPharmacies(ctx, 1, 5)
		require.NoError(t, err)
		assert.Empty(t, nearest)
		store.AssertNotCalled(t, "FetchAll", mock.Anything, entities.TablePharmacies)
	})

	t.Run("unknown patient is not found", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TablePatients).Return([]entities.Record{}, nil).Once()

		_, err := newFacilityService(store).NearestPharmacies(ctx, 9, 5)
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	})

	t.Run("result is capped at the limit", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TablePatients).Return([]entities.Record{
			{"patient_id": float64(1), "contact_info": torontoPatient},
		}, nil).Once()
		pharmacies := make([]entities.Record, 0, 8)
		for i := 0; i < 8; i++ {
			pharmacies = append(pharmacies, entities.Record{
				"pharmacy_id": float64(i + 1),
				"name":        "P",
				"address":     `Downtown||{"lat": 43.65, "lng": -79.38}`,
			})
		}
		store.On("FetchAll", ctx, entities.TablePharmacies).Return(pharmacies, nil).Once()

		nearest, err := newFacilityService(store).NearestPharmacies(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, nearest, services.DefaultNearestLimit)
	})
}

func TestFacilityService_CreatePharmacy(t *testing.T) {
	ctx := context.Background()

	t.Run("name is required", func(t *testing.T) {
		store := new(MockTableStore)

		_, err := newFacilityService(store).CreatePharmacy(ctx, &entities.FacilityCreate{Name: "  "})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores the registration", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("Create", ctx, entities.TablePharmacies, mock.Anything).
			Return(entities.Record{"pharmacy_id": float64(12), "name": "Shoppers"}, nil).Once()

		created, err := newFacilityService(store).CreatePharmacy(ctx, &entities.FacilityCreate{Name: "Shoppers"})
		require.NoError(t, err)
		assert.Equal(t, "Shoppers", created.String("name"))
		store.AssertExpectations(t)
	})
}
