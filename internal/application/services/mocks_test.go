package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/internal/domain/providers"
)

// Mocks

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

type MockInferenceProvider struct {
	mock.Mock
}

func (m *MockInferenceProvider) InvokeTool(ctx context.Context, systemPrompt, userPrompt string, tool providers.ToolFunction) (*providers.StructuredCall, error) {
	args := m.Called(ctx, systemPrompt, userPrompt, tool)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.StructuredCall), args.Error(1)
}
