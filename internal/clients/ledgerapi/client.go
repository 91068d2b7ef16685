// Package ledgerapi provides a client for the ledger REST API
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jsvantner/minca/internal/common"
	"github.com/jsvantner/minca/internal/interfaces"
	"github.com/jsvantner/minca/internal/models"
)

const (
	DefaultBaseURL   = "http://127.0.0.1:8000/api/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the LedgerClient and AuthClient interfaces
type Client struct {
	baseURL    string
	session    interfaces.SessionSource
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new ledger API client. The session source supplies
// the bearer token for every authenticated call.
func NewClient(session interfaces.SessionSource, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		session: session,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// errorBody is the error payload shape the server uses across endpoints.
type errorBody struct {
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

func (b errorBody) message() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Error
}

// mapError converts a non-2xx response into the error taxonomy.
func mapError(resp *http.Response, endpoint string) error {
	raw, _ := io.ReadAll(resp.Body)

	var body errorBody
	_ = json.Unmarshal(raw, &body)

	if resp.StatusCode == http.StatusUnprocessableEntity {
		fields := body.Errors
		if fields == nil {
			fields = map[string]string{}
		}
		return &models.ValidationError{Message: body.message(), Fields: fields}
	}

	if resp.StatusCode == http.StatusConflict {
		return &models.ConflictError{Message: body.message()}
	}

	msg := body.message()
	if msg == "" {
		msg = string(raw)
	}
	return &models.APIError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Message:    msg,
	}
}

// newRequest builds a request with correlation and content headers, adding
// the bearer token when authed is true.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, authed bool) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		token, err := c.session.Token()
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do performs a rate-limited JSON request and decodes the response into out
// when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, payload any, out any, authed bool) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body, authed)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("ledger API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// GetSnapshot retrieves the ledger snapshot for a date range.
func (c *Client) GetSnapshot(ctx context.Context, from, to models.Date) (*models.LedgerSnapshot, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from", from.String())
	}
	if !to.IsZero() {
		q.Set("to", to.String())
	}

	path := "/transactions"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var snap models.LedgerSnapshot
	if err := c.do(ctx, http.MethodGet, path, nil, &snap, true); err != nil {
		return nil, err
	}
	return &snap, nil
}

type categoriesResponse struct {
	Data []models.Category `json:"data"`
}

// GetCategories retrieves the user's category list.
func (c *Client) GetCategories(ctx context.Context) ([]models.Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/transaction/categories", nil, &resp, true); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateTransaction creates a transaction.
func (c *Client) CreateTransaction(ctx context.Context, input models.TransactionInput) error {
	return c.do(ctx, http.MethodPost, "/transaction", input, nil, true)
}

// UpdateTransaction updates a transaction. The server uses POST for
// updates as well.
func (c *Client) UpdateTransaction(ctx context.Context, id int64, input models.TransactionInput) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/transaction/%d", id), input, nil, true)
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transaction/%d", id), nil, nil, true)
}

type categoryResponse struct {
	Data models.Category `json:"data"`
}

// CreateCategory creates a category and returns the stored record.
func (c *Client) CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error) {
	var resp categoryResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/category", input, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// UpdateCategory updates a category and returns the stored record.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input models.CategoryInput) (*models.Category, error) {
	var resp categoryResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/transaction/category/%d", id), input, &resp, true); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteCategory removes a category. A 4xx while the category still has
// transactions comes back as a ConflictError carrying the server message.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/transaction/category/%d", id), nil, nil, true)
	if err == nil {
		return nil
	}

	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 &&
		apiErr.StatusCode != http.StatusUnauthorized && apiErr.StatusCode != http.StatusForbidden {
		return &models.ConflictError{Message: apiErr.Message}
	}
	return err
}

type importResponse struct {
	Summary models.ImportSummary `json:"summary"`
}

// Import uploads a bank CSV as multipart form data and returns the
// server's reconciliation summary.
func (c *Client) Import(ctx context.Context, bank string, filename string, file io.Reader) (*models.ImportSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("bank", bank); err != nil {
		return nil, fmt.Errorf("failed to write bank field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file contents: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/transactions/import", &buf, true)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.Debug().Str("bank", bank).Str("file", filename).Msg("ledger import request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, mapError(resp, "/transactions/import")
	}

	var out importResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode import summary: %w", err)
	}
	return &out.Summary, nil
}

// Ensure Client implements LedgerClient
var _ interfaces.LedgerClient = (*Client)(nil)
