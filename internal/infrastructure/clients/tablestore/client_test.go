package tablestore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/pkg/config"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.RemoteStoreConfig{BaseURL: server.URL, TimeoutSeconds: 5})
	require.NoError(t, err)
	return client
}

func TestFetchAll_BareListEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/table/diagnosis", r.URL.Path)
		w.Write([]byte(`[{"diagnosis_id":1},{"diagnosis_id":2}]`))
	})

	records, err := client.FetchAll(context.Background(), "diagnosis")
	require.NoError(t, err)
	require.Len(t, records, 2)
	id, ok := records[0].Int("diagnosis_id")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestFetchAll_DataEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"patient_id":7}]}`))
	})

	records, err := client.FetchAll(context.Background(), "patients_registration")
	require.NoError(t, err)
	require.Len(t, records, 1)
	id, _ := records[0].Int("patient_id")
	assert.Equal(t, 7, id)
}

func TestFetchAll_UnexpectedShapeDegradesToEmpty(t *testing.T) {
	for _, body := range []string{`{"rows":[{"a":1}]}`, `"just a string"`, `42`, `{"data":"nope"}`} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		records, err := client.FetchAll(context.Background(), "diagnosis")
		require.NoError(t, err, "body %s", body)
		assert.Empty(t, records, "body %s", body)
	}
}

func TestFetchAll_Non2xxSurfacesUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.FetchAll(context.Background(), "diagnosis")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	assert.Contains(t, statusErr.Body, "boom")
}

func TestCreate_PostsPayloadAndDecodesResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/table/prescription_form", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "12", payload["prescription_id"])
		assert.Nil(t, payload["pharmacy_id"])

		w.Write([]byte(`{"data":[{"prescription_id":"12"}]}`))
	})

	resp, err := client.Create(context.Background(), "prescription_form", entities.Record{
		"prescription_id": "12",
		"pharmacy_id":     nil,
	})
	require.NoError(t, err)
	unwrapped := entities.UnwrapRecord(resp)
	assert.Equal(t, "12", unwrapped.String("prescription_id"))
}

func TestUpdate_PutsOnlyProvidedFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/table/requisition_form/9", r.URL.Path)

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, map[string]any{"status": "completed"}, payload)

		w.Write([]byte(`{"updated":true}`))
	})

	_, err := client.Update(context.Background(), "requisition_form", "9", entities.Record{"status": "completed"})
	require.NoError(t, err)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(&config.RemoteStoreConfig{})
	assert.Error(t, err)

	_, err = NewClient(nil)
	assert.Error(t, err)
}
