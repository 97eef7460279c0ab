package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

func TestRegistry_DispatchRoutesByName(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register("echo", func(_ context.Context, args map[string]any) (any, error) {
		return args["value"], nil
	}))

	result, err := registry.Dispatch(context.Background(), "echo", map[string]any{"value": "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestRegistry_UnknownToolIsNotFound(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Dispatch(context.Background(), "missing", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), `unknown tool "missing"`)
}

func TestRegistry_DuplicateRegistrationRejected(t *testing.T) {
	registry := NewRegistry()
	noop := func(_ context.Context, _ map[string]any) (any, error) { return nil, nil }

	require.NoError(t, registry.Register("create_prescription", noop))
	err := registry.Register("create_prescription", noop)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestRegistry_RegisterValidatesInputs(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Register("", func(_ context.Context, _ map[string]any) (any, error) { return nil, nil }))
	assert.Error(t, registry.Register("broken", nil))
}
