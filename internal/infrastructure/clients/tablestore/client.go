package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clinicbridge/backend/internal/domain/entities"
	"github.com/clinicbridge/backend/pkg/config"
	apperrors "github.com/clinicbridge/backend/pkg/errors"
)

// StatusError carries a non-2xx response from the remote table store.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote store returned status %d: %s", e.Status, e.Body)
}

// Client is a generic HTTP client for the remote record-table store.
// Tables are addressed by name under <base>/table/<name>; the store
// understands nothing else, so every call here is a whole-table read, a
// record append, or a by-id overwrite of specific fields.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new remote table store client.
func NewClient(cfg *config.RemoteStoreConfig) (*Client, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("remote store base URL is required")
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchAll returns every record of a table. The store's response
// envelope varies between a bare list and {"data": [...]}; both are
// normalized to a record slice, and any other shape degrades to an
// empty slice rather than an error.
func (c *Client) FetchAll(ctx context.Context, table string) ([]entities.Record, error) {
	body, err := c.do(ctx, http.MethodGet, c.tableURL(table), nil)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("remote table %s returned malformed JSON", table), err)
	}
	return extractRecords(decoded), nil
}

// Create appends a record to a table.
func (c *Client) Create(ctx context.Context, table string, payload entities.Record) (entities.Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode record", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.tableURL(table), raw)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// Update overwrites the given fields of the record identified by id.
func (c *Client) Update(ctx context.Context, table string, id string, partial entities.Record) (entities.Record, error) {
	raw, err := json.Marshal(partial)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode record", err)
	}

	body, err := c.do(ctx, http.MethodPut, c.tableURL(table)+"/"+id, raw)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/table/" + table
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build remote store request", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("remote table store unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to read remote store response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("remote store call %s %s failed", method, url),
			&StatusError{Status: resp.StatusCode, Body: string(body)},
		)
	}
	return body, nil
}

// extractRecords normalizes the store's varying response envelopes to
// an ordered record slice.
func extractRecords(decoded any) []entities.Record {
	if wrapped, ok := decoded.(map[string]any); ok {
		if data, present := wrapped["data"]; present {
			decoded = data
		}
	}

	list, ok := decoded.([]any)
	if !ok {
		return []entities.Record{}
	}

	records := make([]entities.Record, 0, len(list))
	for _, item := range list {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, entities.Record(rec))
		}
	}
	return records
}

func decodeRecord(body []byte) entities.Record {
	var rec entities.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return entities.Record{}
	}
	return rec
}
