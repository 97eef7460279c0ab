package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/clinicbridge/backend/internal/domain/providers"
	"github.com/clinicbridge/backend/pkg/config"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the structured-inference provider on top of the
// OpenAI chat completions API with forced tool choice.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

type toolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolCall struct {
	Type     string           `json:"type"`
	Function toolCallFunction `json:"function"`
}

type chatMessage struct {
	ToolCalls []toolCall `json:"tool_calls"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatEnvelope struct {
	Choices []chatChoice `json:"choices"`
}

// InvokeTool sends a system/user prompt with a single tool definition,
// forcing the model to call that tool. The response must contain
// exactly one structured call whose arguments match the schema; zero
// calls is a contract violation and is never retried here.
func (c *Client) InvokeTool(ctx context.Context, systemPrompt, userPrompt string, tool providers.ToolFunction) (*providers.StructuredCall, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"tools": []map[string]any{
			{
				"type": "function",
				"function": map[string]any{
					"name":        tool.Name,
					"description": tool.Description,
					"parameters":  tool.Parameters,
				},
			},
		},
		"tool_choice": map[string]any{
			"type":     "function",
			"function": map[string]string{"name": tool.Name},
		},
		"temperature": 0.2,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordInferenceMetric(ctx, c.model, 0, time.Since(start), err)
		return nil, apperrors.NewExternalError("inference service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("status %d", resp.StatusCode)
		recordInferenceMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("inference request failed with status %d", resp.StatusCode), nil)
	}

	var envelope chatEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordInferenceMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, apperrors.NewExternalError("failed to decode inference response", err)
	}

	call, err := extractStructuredCall(&envelope, tool.Name)
	recordInferenceMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return call, nil
}

func extractStructuredCall(envelope *chatEnvelope, toolName string) (*providers.StructuredCall, error) {
	if len(envelope.Choices) == 0 {
		return nil, apperrors.NewInferenceError("model returned no choices", nil)
	}

	calls := envelope.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return nil, apperrors.NewInferenceError("model returned no structured call", nil)
	}

	call := calls[0]
	if call.Function.Name != toolName {
		return nil, apperrors.NewInferenceError(
			fmt.Sprintf("model called %q instead of %q", call.Function.Name, toolName), nil)
	}
	if !json.Valid([]byte(call.Function.Arguments)) {
		return nil, apperrors.NewInferenceError("structured call arguments are not valid JSON", nil)
	}

	return &providers.StructuredCall{
		Name:      call.Function.Name,
		Arguments: json.RawMessage(call.Function.Arguments),
	}, nil
}

type inferenceMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var inferenceMetricsInit = false
var inferenceMetricsState inferenceMetrics

func ensureInferenceMetrics() {
	if inferenceMetricsInit {
		return
	}
	meter := otel.Meter("github.com/clinicbridge/backend/openai")

	requestCount, err := meter.Int64Counter(
		"ai.openai.request.count",
		metric.WithDescription("Number of OpenAI requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.openai.request.duration",
		metric.WithDescription("OpenAI request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.openai.request.errors",
		metric.WithDescription("Number of OpenAI request errors"),
	)
	if err != nil {
		return
	}

	inferenceMetricsState = inferenceMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	inferenceMetricsInit = true
}

func recordInferenceMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureInferenceMetrics()
	if !inferenceMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	inferenceMetricsState.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	inferenceMetricsState.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		inferenceMetricsState.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
