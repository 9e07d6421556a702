// Package cms is the boundary to the external headless content store. The
// store is treated as an opaque document database keyed by (endpoint, id);
// field shapes beyond what the service itself reads are not validated here.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when the store reports no record for (endpoint, id).
var ErrNotFound = errors.New("cms: content not found")

// APIError is a non-2xx response from the content store.
type APIError struct {
	Status   int
	Endpoint string
	Body     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms: %s returned %d: %s", e.Endpoint, e.Status, e.Body)
}

// IsNotFound reports whether err means the requested record does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// ListResult is the store's list envelope.
type ListResult struct {
	Contents   []json.RawMessage `json:"contents"`
	TotalCount int               `json:"totalCount"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
}

// Client talks to a microCMS-style content API. All operations are scoped by
// an endpoint name ("exhibitions", "workshops", "creators", "comments").
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a content store client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Get fetches a single record by ID. queries may be nil.
func (c *Client) Get(ctx context.Context, endpoint, id string, queries url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint+"/"+url.PathEscape(id), queries, nil)
}

// GetAll fetches a list of records for an endpoint. queries may carry the
// store's filters/orders/limit parameters.
func (c *Client) GetAll(ctx context.Context, endpoint string, queries url.Values) (ListResult, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint, queries, nil)
	if err != nil {
		return ListResult{}, err
	}
	var list ListResult
	if err := json.Unmarshal(raw, &list); err != nil {
		return ListResult{}, fmt.Errorf("cms: decode %s list: %w", endpoint, err)
	}
	return list, nil
}

// Create posts a new record and returns the store's creation response.
func (c *Client) Create(ctx context.Context, endpoint string, content any) (json.RawMessage, error) {
	body, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("cms: encode %s record: %w", endpoint, err)
	}
	return c.do(ctx, http.MethodPost, endpoint, nil, body)
}

// Update patches fields of an existing record.
func (c *Client) Update(ctx context.Context, endpoint, id string, content any) error {
	body, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("cms: encode %s update: %w", endpoint, err)
	}
	_, err = c.do(ctx, http.MethodPatch, endpoint+"/"+url.PathEscape(id), nil, body)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, queries url.Values, body []byte) (json.RawMessage, error) {
	u := c.baseURL + "/" + path
	if len(queries) > 0 {
		u += "?" + queries.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("X-MICROCMS-API-KEY", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("cms: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Endpoint: path, Body: truncate(string(data), 200)}
	}
	return data, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
