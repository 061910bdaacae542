package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noor-edu/portal-api/pkg/config"
	appErrors "github.com/noor-edu/portal-api/pkg/errors"
)

const defaultPerPage = 500

// ObserverFunc receives one sample per store round-trip, for metrics.
type ObserverFunc func(op, collection string, status int, duration time.Duration)

// HTTPClient talks to the hosted record store's collection REST API with a
// bearer token on every call. It never retries; transport failures surface as
// TRANSPORT_ERROR and the caller decides.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
	observe ObserverFunc
}

// NewHTTPClient constructs a store client from configuration.
func NewHTTPClient(cfg config.StoreConfig, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// WithObserver attaches a per-request metrics hook.
func (c *HTTPClient) WithObserver(fn ObserverFunc) *HTTPClient {
	c.observe = fn
	return c
}

type listEnvelope struct {
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
	TotalItems int      `json:"totalItems"`
	Items      []Record `json:"items"`
}

type errorEnvelope struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

// List returns records matching the query. Result sets larger than one page
// are followed transparently.
func (c *HTTPClient) List(ctx context.Context, collection string, q Query) ([]Record, error) {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	var out []Record
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("perPage", strconv.Itoa(perPage))
		if q.Filter != "" {
			params.Set("filter", q.Filter)
		}
		if q.Sort != "" {
			params.Set("sort", q.Sort)
		}
		if q.Expand != "" {
			params.Set("expand", q.Expand)
		}

		var envelope listEnvelope
		path := fmt.Sprintf("/api/collections/%s/records?%s", collection, params.Encode())
		if err := c.do(ctx, http.MethodGet, "list", collection, path, nil, &envelope); err != nil {
			return nil, err
		}
		out = append(out, envelope.Items...)

		if len(envelope.Items) < perPage || len(out) >= envelope.TotalItems {
			return out, nil
		}
	}
}

// Get fetches a single record by id.
func (c *HTTPClient) Get(ctx context.Context, collection, id string) (Record, error) {
	var rec Record
	path := fmt.Sprintf("/api/collections/%s/records/%s", collection, url.PathEscape(id))
	if err := c.do(ctx, http.MethodGet, "get", collection, path, nil, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create inserts a record and returns the stored row.
func (c *HTTPClient) Create(ctx context.Context, collection string, fields map[string]interface{}) (Record, error) {
	var rec Record
	path := fmt.Sprintf("/api/collections/%s/records", collection)
	if err := c.do(ctx, http.MethodPost, "create", collection, path, fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update patches the named fields on a record.
func (c *HTTPClient) Update(ctx context.Context, collection, id string, fields map[string]interface{}) (Record, error) {
	var rec Record
	path := fmt.Sprintf("/api/collections/%s/records/%s", collection, url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, "update", collection, path, fields, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes a record.
func (c *HTTPClient) Delete(ctx context.Context, collection, id string) error {
	path := fmt.Sprintf("/api/collections/%s/records/%s", collection, url.PathEscape(id))
	return c.do(ctx, http.MethodDelete, "delete", collection, path, nil, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, op, collection, path string, body interface{}, dest interface{}) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode store payload")
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build store request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		if c.observe != nil {
			c.observe(op, collection, 0, duration)
		}
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, "record store unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if c.observe != nil {
		c.observe(op, collection, resp.StatusCode, duration)
	}

	if resp.StatusCode >= 400 {
		return c.mapError(resp, op, collection)
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, "decode store response")
	}
	return nil
}

func (c *HTTPClient) mapError(resp *http.Response, op, collection string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	var envelope errorEnvelope
	_ = json.Unmarshal(raw, &envelope)
	message := envelope.Message
	if message == "" {
		message = fmt.Sprintf("store %s %s failed with status %d", op, collection, resp.StatusCode)
	}

	c.logger.Debug("store error",
		zap.String("op", op),
		zap.String("collection", collection),
		zap.Int("status", resp.StatusCode),
		zap.String("message", message),
	)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if isUniqueViolation(envelope.Data) {
			return appErrors.Clone(appErrors.ErrConflict, message)
		}
		return appErrors.Clone(appErrors.ErrValidation, message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrAuth, message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, message)
	case http.StatusConflict:
		return appErrors.Clone(appErrors.ErrConflict, message)
	default:
		return appErrors.Clone(appErrors.ErrTransport, message)
	}
}

// isUniqueViolation inspects the per-field error payload for the store's
// uniqueness code so duplicate emails surface as CONFLICT, not VALIDATION.
func isUniqueViolation(data map[string]json.RawMessage) bool {
	for _, raw := range data {
		var field struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(raw, &field); err != nil {
			continue
		}
		if field.Code == "validation_not_unique" {
			return true
		}
	}
	return false
}
