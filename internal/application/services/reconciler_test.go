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

func TestReconciler_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("equal candidate set issues no write", func(t *testing.T) {
		store := new(MockTableStore)
		current := entities.Record{
			"prescription_id": "5",
			"status":          "active",
			"quantity":        float64(30),
		}
		store.On("FetchAll", ctx, entities.TablePrescriptions).Return([]entities.Record{current}, nil).Once()

		got, err := services.NewReconciler(store).Apply(ctx, entities.TablePrescriptions, "prescription_id", "5",
			entities.Record{"status": "active", "quantity": 30})
		require.NoError(t, err)
		assert.Equal(t, current, got)
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("single differing field writes only that field", func(t *testing.T) {
		store := new(MockTableStore)
		before := entities.Record{
			"prescription_id": "5",
			"status":          "active",
			"quantity":        float64(30),
		}
		after := entities.Record{
			"prescription_id": "5",
			"status":          "filled",
			"quantity":        float64(30),
		}
		store.On("FetchAll", ctx, entities.TablePrescriptions).Return([]entities.Record{before}, nil).Once()
		store.On("Update", ctx, entities.TablePrescriptions, "5", entities.Record{"status": "filled"}).
			Return(after, nil).Once()
		store.On("FetchAll", ctx, entities.TablePrescriptions).Return([]entities.Record{after}, nil).Once()

		got, err := services.NewReconciler(store).Apply(ctx, entities.TablePrescriptions, "prescription_id", "5",
			entities.Record{"status": "filled", "quantity": 30})
		require.NoError(t, err)
		assert.Equal(t, "filled", got.String("status"))
		store.AssertExpectations(t)
	})

	t.Run("missing record is not found and never writes", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", ctx, entities.TablePrescriptions).Return([]entities.Record{}, nil).Once()

		_, err := services.NewReconciler(store).Apply(ctx, entities.TablePrescriptions, "prescription_id", "9",
			entities.Record{"status": "filled"})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
