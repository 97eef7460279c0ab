package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicbridge/backend/internal/api/handlers"
	"github.com/clinicbridge/backend/internal/application/services"
	"github.com/clinicbridge/backend/internal/domain/entities"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) FetchAll(ctx context.Context, table string) ([]entities.Record, error) {
	args := m.Called(ctx, table)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Record), args.Error(1)
}

func (m *MockTableStore) Create(ctx context.Context, table string, payload entities.Record) (entities.Record, error) {
	args := m.Called(ctx, table, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.Record), args.Error(1)
}

func (m *MockTableStore) Update(ctx context.Context, table, id string, payload entities.Record) (entities.Record, error) {
	args := m.Called(ctx, table, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.Record), args.Error(1)
}

func newPrescriptionHandler(store *MockTableStore) *handlers.PrescriptionHandler {
	return handlers.NewPrescriptionHandler(
		services.NewPrescriptionService(store, services.NewReconciler(store)))
}

func TestPrescriptionHandler_CreatePrescription(t *testing.T) {
	t.Run("returns the payload with the allocated id", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", mock.Anything, entities.TablePrescriptions).
			Return([]entities.Record{{"prescription_id": "2"}}, nil).Once()
		store.On("Create", mock.Anything, entities.TablePrescriptions, mock.Anything).
			Return(entities.Record{}, nil).Once()

		body := `{"patient_id": 1, "medication_name": "Amoxicillin"}`
		req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		newPrescriptionHandler(store).CreatePrescription(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "3", got["prescription_id"])
		assert.Equal(t, "Amoxicillin", got["medication_name"])
	})

	t.Run("invalid body is a 400", func(t *testing.T) {
		store := new(MockTableStore)
		req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		newPrescriptionHandler(store).CreatePrescription(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing patient_id is a 400", func(t *testing.T) {
		store := new(MockTableStore)
		req := httptest.NewRequest(http.MethodPost, "/api/prescriptions", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		newPrescriptionHandler(store).CreatePrescription(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPrescriptionHandler_GetPrescription(t *testing.T) {
	t.Run("unknown prescription is a 404", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", mock.Anything, entities.TablePrescriptions).
			Return([]entities.Record{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/prescriptions/404", nil)
		req.SetPathValue("prescription_id", "404")
		rec := httptest.NewRecorder()

		newPrescriptionHandler(store).GetPrescription(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("upstream failure is a 502", func(t *testing.T) {
		store := new(MockTableStore)
		store.On("FetchAll", mock.Anything, entities.TablePrescriptions).
			Return(nil, apperrExternal()).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/prescriptions/5", nil)
		req.SetPathValue("prescription_id", "5")
		rec := httptest.NewRecorder()

		newPrescriptionHandler(store).GetPrescription(rec, req)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func apperrExternal() error {
	return apperrors.NewExternalError("remote table store unavailable", nil)
}
