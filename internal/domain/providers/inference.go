package providers

import (
	"context"
	"encoding/json"
)

// ToolFunction is a JSON-schema constrained tool definition handed to
// the structured-inference service.
type ToolFunction struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// StructuredCall is the single schema-matching call the inference
// service must return.
type StructuredCall struct {
	Name      string
	Arguments json.RawMessage
}

// InferenceProvider invokes the structured-inference service with a
// prompt and a tool definition, forcing the response to be exactly one
// structured call matching the tool's schema. A response without such a
// call is a contract violation, not something to retry.
type InferenceProvider interface {
	InvokeTool(ctx context.Context, systemPrompt, userPrompt string, tool ToolFunction) (*StructuredCall, error)
}
