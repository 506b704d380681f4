package userapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Compile-time interface check.
var _ Client = (*HTTPClient)(nil)

// DefaultBaseURL is the public reference deployment of the user service.
const DefaultBaseURL = "https://reqres.in/api"

// ErrNotFound is returned when the service answers 404 for a single user.
var ErrNotFound = errors.New("userapi: user not found")

// HTTPClient implements Client over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// ClientOption configures an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.logger = l
	}
}

// NewHTTPClient creates a client rooted at baseURL (for example
// "https://reqres.in/api"). An empty baseURL selects DefaultBaseURL.
func NewHTTPClient(baseURL string, opts ...ClientOption) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// listEnvelope tells an absent data key apart from an empty page.
type listEnvelope struct {
	Page       int     `json:"page"`
	PerPage    int     `json:"per_page"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Data       *[]User `json:"data"`
}

// ListUsers fetches one page via GET /users?page=N. A response without a
// data array (including an empty body) is a decode error, never an empty
// page.
func (c *HTTPClient) ListUsers(ctx context.Context, page int) (*ListUsersResponse, error) {
	var env listEnvelope
	path := "/users?page=" + strconv.Itoa(page)
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, fmt.Errorf("userapi: decode response: %s: missing data array", path)
	}
	data := *env.Data
	if data == nil {
		data = []User{}
	}
	return &ListUsersResponse{
		Page:       env.Page,
		PerPage:    env.PerPage,
		Total:      env.Total,
		TotalPages: env.TotalPages,
		Data:       data,
	}, nil
}

// GetUser fetches a single user via GET /users/{id}.
func (c *HTTPClient) GetUser(ctx context.Context, id int) (*User, error) {
	var resp GetUserResponse
	if err := c.do(ctx, http.MethodGet, userPath(id), nil, &resp); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &resp.Data, nil
}

// CreateUser submits a new user via POST /users.
func (c *HTTPClient) CreateUser(ctx context.Context, in UserInput) (*CreatedUser, error) {
	var created CreatedUser
	if err := c.do(ctx, http.MethodPost, "/users", in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces a user via PUT /users/{id}.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int, in UserInput) (*UpdatedUser, error) {
	var updated UpdatedUser
	if err := c.do(ctx, http.MethodPut, userPath(id), in, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteUser removes a user via DELETE /users/{id}.
func (c *HTTPClient) DeleteUser(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func userPath(id int) string {
	return "/users/" + strconv.Itoa(id)
}

// do performs one JSON request. A nil body sends no payload; a nil result
// discards the response body. Any 2xx status is success.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("userapi: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("userapi: create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("userapi: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("userapi: read response: %w", err)
	}

	c.logger.Debug("user service call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("userapi: decode response: %w", err)
	}
	return nil
}

// HTTPError is a non-2xx answer from the user service.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body != "" && e.Body != "{}" {
		return fmt.Sprintf("userapi: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("userapi: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}
