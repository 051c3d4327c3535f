// Package apiclient is the typed HTTP client over the storefront API.
package apiclient

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

	"github.com/azadstore/storefront/internal/domain"
)

const defaultTimeout = 15 * time.Second

// APIError is the decoded server error envelope.
type APIError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (%d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s (%d)", e.Code, e.Status)
}

// IsNotFound reports whether err is a 404 API error.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the storefront API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client against baseURL. A nil httpClient gets a default with a
// request timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("apiclient: base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

// FetchCatalog retrieves the full catalog document.
func (c *Client) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	var catalog domain.Catalog
	if err := c.do(ctx, http.MethodGet, "/api/id", nil, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// ReplaceCatalog overwrites the full catalog document.
func (c *Client) ReplaceCatalog(ctx context.Context, catalog domain.Catalog) error {
	return c.do(ctx, http.MethodPut, "/api/id", catalog, nil)
}

// ListReviews fetches the server review list.
func (c *Client) ListReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := c.do(ctx, http.MethodGet, "/api/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview posts a review and returns the server's representation, which
// may carry a different id than the one submitted.
func (c *Client) CreateReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	var created domain.Review
	if err := c.do(ctx, http.MethodPost, "/api/reviews", review, &created); err != nil {
		return domain.Review{}, err
	}
	return created, nil
}

// UpdateReview applies a partial patch to the identified review.
func (c *Client) UpdateReview(ctx context.Context, id domain.ID, patch map[string]any) (domain.Review, error) {
	var updated domain.Review
	if err := c.do(ctx, http.MethodPut, "/api/reviews/"+url.PathEscape(id.String()), patch, &updated); err != nil {
		return domain.Review{}, err
	}
	return updated, nil
}

// DeleteReview removes the identified review and reports how many entries the
// server dropped.
func (c *Client) DeleteReview(ctx context.Context, id domain.ID) (int, error) {
	var resp struct {
		Removed int `json:"removed"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/reviews/"+url.PathEscape(id.String()), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Removed, nil
}

// ListOrders fetches the server order list.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrder records an order server-side.
func (c *Client) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	var created domain.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return domain.Order{}, err
	}
	return created, nil
}

// Login exchanges admin credentials for the access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/login", payload, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ChangePassword rotates the admin credentials.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newUsername, newPassword string) error {
	payload := map[string]string{
		"oldPassword": oldPassword,
		"newUsername": newUsername,
		"newPassword": newPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/change-password", payload, nil)
}

// Ping checks server liveness.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/ping", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("apiclient: read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}
