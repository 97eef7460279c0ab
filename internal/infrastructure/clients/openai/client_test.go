package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicbridge/backend/internal/domain/providers"
	"github.com/clinicbridge/backend/pkg/config"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

var designTool = providers.ToolFunction{
	Name:        "design_orders",
	Description: "Design a prescription and requisition.",
	Parameters: map[string]any{
		"type":       "object",
		"properties": map[string]any{"prescription": map[string]any{"type": "object"}},
		"required":   []string{"prescription"},
	},
}

func newTestInferenceClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&config.OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	client.baseURL = server.URL
	return client
}

func TestInvokeTool_ForcesToolChoiceAndReturnsArguments(t *testing.T) {
	client := newTestInferenceClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		choice := payload["tool_choice"].(map[string]any)
		assert.Equal(t, "function", choice["type"])
		fn := choice["function"].(map[string]any)
		assert.Equal(t, "design_orders", fn["name"])

		w.Write([]byte(`{"choices":[{"message":{"tool_calls":[
			{"type":"function","function":{"name":"design_orders","arguments":"{\"prescription\":{\"medication_name\":\"Amoxicillin\"}}"}}
		]}}]}`))
	})

	call, err := client.InvokeTool(context.Background(), "system", "user", designTool)
	require.NoError(t, err)
	assert.Equal(t, "design_orders", call.Name)

	var args map[string]any
	require.NoError(t, json.Unmarshal(call.Arguments, &args))
	assert.Contains(t, args, "prescription")
}

func TestInvokeTool_NoToolCallIsContractViolation(t *testing.T) {
	client := newTestInferenceClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"tool_calls":[]}}]}`))
	})

	_, err := client.InvokeTool(context.Background(), "system", "user", designTool)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInference))
}

func TestInvokeTool_WrongToolNameIsContractViolation(t *testing.T) {
	client := newTestInferenceClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"tool_calls":[
			{"type":"function","function":{"name":"something_else","arguments":"{}"}}
		]}}]}`))
	})

	_, err := client.InvokeTool(context.Background(), "system", "user", designTool)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInference))
}

func TestInvokeTool_Non2xxIsExternalError(t *testing.T) {
	client := newTestInferenceClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := client.InvokeTool(context.Background(), "system", "user", designTool)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.OpenAIConfig{})
	assert.Error(t, err)
}
