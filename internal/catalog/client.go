package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

// Client talks to the remote catalog service. It is a thin transport:
// every method is a single attempt, and classifying or swallowing
// failures is the reconciliation engine's job.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List fetches the whole product catalog.
func (c *Client) List(ctx context.Context) ([]ProductRecord, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/api/productos", nil)
	if err != nil {
		return nil, err
	}
	if isEmptyBody(body) {
		return nil, ErrEmptyBody
	}

	var records []ProductRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product list: %w", err)
	}
	return records, nil
}

// GetByID fetches a single product record.
func (c *Client) GetByID(ctx context.Context, id uint) (*ProductRecord, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/productos/%d", id), nil)
	if err != nil {
		return nil, err
	}
	if isEmptyBody(body) {
		return nil, ErrEmptyBody
	}

	var record ProductRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product record: %w", err)
	}
	return &record, nil
}

// ListByCategory fetches the products of one category, filtered
// server-side.
func (c *Client) ListByCategory(ctx context.Context, category string) ([]ProductRecord, error) {
	body, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/productos/category/%s", category), nil)
	if err != nil {
		return nil, err
	}
	if isEmptyBody(body) {
		return nil, ErrEmptyBody
	}

	var records []ProductRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal category list: %w", err)
	}
	return records, nil
}

// Create registers a product on the remote catalog. A success with an
// empty body returns (nil, nil): the caller keeps the submitted record.
func (c *Client) Create(ctx context.Context, record ProductRecord) (*ProductRecord, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/api/productos", record)
	if err != nil {
		return nil, err
	}
	if isEmptyBody(body) {
		return nil, nil
	}

	var created ProductRecord
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal created record: %w", err)
	}
	return &created, nil
}

// Update replaces a product record on the remote catalog.
func (c *Client) Update(ctx context.Context, id uint, record ProductRecord) error {
	_, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/api/productos/%d", id), record)
	return err
}

// Delete removes a product record from the remote catalog.
func (c *Client) Delete(ctx context.Context, id uint) error {
	_, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/productos/%d", id), nil)
	return err
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("Catalog request", map[string]interface{}{
		"method": method,
		"url":    url,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", ErrNetwork, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d %s", ErrRemoteStatus, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return body, nil
}

func isEmptyBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
