// Package tools holds the named-tool registry that routes structured
// inference calls to their handlers.
package tools

import (
	"context"
	"fmt"
	"sync"

	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

// Handler executes one named tool against its decoded arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Registry maps tool names to handlers. Dispatch happens by explicit
// lookup; an unknown name is an error, never a silent no-op.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to a tool name. Registering the same name
// twice is a programming error and is rejected.
func (r *Registry) Register(name string, handler Handler) error {
	if name == "" {
		return apperrors.NewValidationError("tool name is required")
	}
	if handler == nil {
		return apperrors.NewValidationError(fmt.Sprintf("tool %q has no handler", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[name]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("tool %q already registered", name))
	}
	r.handlers[name] = handler
	return nil
}

// Names returns the registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Dispatch looks up the named tool and runs it.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("unknown tool %q", name))
	}
	return handler(ctx, args)
}
