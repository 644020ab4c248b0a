package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crm-service/internal/models"
)

// Client is a typed HTTP client for the CRM API, used by scheduled jobs and
// the reminder script.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given API base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Hello probes the trivial echo query and returns its message
func (c *Client) Hello(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.get(ctx, "/hello", nil, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "", fmt.Errorf("empty hello response")
	}
	return resp.Message, nil
}

// ListOrders returns orders with order_date on or after since
func (c *Client) ListOrders(ctx context.Context, since time.Time) ([]models.Order, error) {
	params := url.Values{}
	params.Set("order_date_gte", since.Format(time.RFC3339))

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.get(ctx, "/api/v1/orders", params, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

// UpdateLowStockProducts triggers the replenishment sweep over the API
func (c *Client) UpdateLowStockProducts(ctx context.Context) (*LowStockResponse, error) {
	var resp LowStockResponse
	if err := c.post(ctx, "/api/v1/products/update-low-stock", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LowStockResponse mirrors the sweep mutation payload
type LowStockResponse struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	UpdatedProducts []models.Product `json:"updated_products"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s returned status %d: %s", req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}
