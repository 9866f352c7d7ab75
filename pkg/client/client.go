// Package client provides a typed HTTP client for the catalog API. It keeps
// the session cookie in a jar, so a Login call authenticates every request
// that follows on the same Client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-datacatalog/pkg/catalog"
)

// APIError carries the status code and error message of a failed API call.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d: %s", e.Status, e.Message)
}

// Client talks to a catalog server. Construct it with New; the zero value is
// not usable.
type Client struct {
	base   *url.URL
	client *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The provided client's
// jar is replaced so session cookies still stick.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the per-request timeout. The default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}

	c := &Client{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.client.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.client.Jar = jar
	}
	return c, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, payload)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return apiError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func apiError(status int, raw []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	message := http.StatusText(status)
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		message = payload.Error
	}
	return &APIError{Status: status, Message: message}
}

// Login authenticates and stores the session cookie on success.
func (c *Client) Login(ctx context.Context, username, password string) (catalog.AuthStatus, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Success bool `json:"success"`
		User    struct {
			Username string       `json:"username"`
			Role     catalog.Role `json:"role"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &resp); err != nil {
		return catalog.AuthStatus{}, err
	}
	return catalog.AuthStatus{
		Authenticated: true,
		Username:      resp.User.Username,
		Role:          resp.User.Role,
	}, nil
}

// Logout clears the server-side session cookie.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/logout", nil, nil)
}

// CurrentUser reports the session's authentication status.
func (c *Client) CurrentUser(ctx context.Context) (catalog.AuthStatus, error) {
	var status catalog.AuthStatus
	if err := c.do(ctx, http.MethodGet, "/api/user", nil, &status); err != nil {
		return catalog.AuthStatus{}, err
	}
	return status, nil
}

// Filters fetches the facet vocabulary for the checklist sidebar.
func (c *Client) Filters(ctx context.Context) (catalog.FilterVocabulary, error) {
	var vocab catalog.FilterVocabulary
	if err := c.do(ctx, http.MethodGet, "/api/filters", nil, &vocab); err != nil {
		return nil, err
	}
	return vocab, nil
}

// Products fetches every record. Sensitive fields arrive only when the
// session is an admin; the server strips them otherwise.
func (c *Client) Products(ctx context.Context) ([]catalog.Record, error) {
	var records []catalog.Record
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Product fetches a single record by its ID.
func (c *Client) Product(ctx context.Context, id string) (catalog.Record, error) {
	var rec catalog.Record
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &rec); err != nil {
		return catalog.Record{}, err
	}
	return rec, nil
}

// CreateProduct persists a new record and returns it with its server ID.
func (c *Client) CreateProduct(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	var created catalog.Record
	if err := c.do(ctx, http.MethodPost, "/api/products", rec, &created); err != nil {
		return catalog.Record{}, err
	}
	return created, nil
}

// UpdateProduct overwrites an existing record.
func (c *Client) UpdateProduct(ctx context.Context, rec catalog.Record) (catalog.Record, error) {
	if rec.ID == "" {
		return catalog.Record{}, fmt.Errorf("client: record id is required")
	}
	var updated catalog.Record
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(rec.ID), rec, &updated); err != nil {
		return catalog.Record{}, err
	}
	return updated, nil
}

// DeleteProduct removes a record.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// ColumnOptions fetches the editable vocabulary for the form controls.
func (c *Client) ColumnOptions(ctx context.Context) (catalog.ColumnOptions, error) {
	var options catalog.ColumnOptions
	if err := c.do(ctx, http.MethodGet, "/api/column-options", nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// AddColumnOption appends a value to a column's vocabulary.
func (c *Client) AddColumnOption(ctx context.Context, column, value string) error {
	body := map[string]string{"column": column, "value": value}
	return c.do(ctx, http.MethodPost, "/api/column-options", body, nil)
}

// DeleteColumnOption removes a value from a column's vocabulary.
func (c *Client) DeleteColumnOption(ctx context.Context, column, value string) error {
	body := map[string]string{"column": column, "value": value}
	return c.do(ctx, http.MethodPost, "/api/column-options/delete", body, nil)
}

// Users lists the accounts. Admin only.
func (c *Client) Users(ctx context.Context) ([]catalog.Account, error) {
	var users []catalog.Account
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser adds an account. Admin only.
func (c *Client) CreateUser(ctx context.Context, username, password string, role catalog.Role) (catalog.Account, error) {
	body := map[string]any{"username": username, "password": password, "role": role}
	var account catalog.Account
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &account); err != nil {
		return catalog.Account{}, err
	}
	return account, nil
}

// DeleteUser removes an account. Admin only; self-deletion is rejected.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil)
}
