package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when New is called with an empty base URL.
	DefaultBaseURL = "http://localhost:8000"

	defaultTimeout  = 10 * time.Second
	defaultMaxLimit = 500
)

// Client talks to the Books REST API.
type Client struct {
	baseURL  string
	maxLimit int
	http     *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMaxLimit sets the largest ?limit= the server accepts. List splits
// larger requests into consecutive chunks.
func WithMaxLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a Client for the API at baseURL.
// If baseURL is empty, DefaultBaseURL is used.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	// Strip trailing slash for consistent URL building.
	baseURL = strings.TrimRight(baseURL, "/")

	c := &Client{
		baseURL:  baseURL,
		maxLimit: defaultMaxLimit,
		http:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes the request with standard JSON headers.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("Content-Type") == "" && req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, Path: req.URL.Path, Err: err}
	}
	return resp, nil
}

// doJSON sends a request and decodes the JSON response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), bodyReader)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(resp); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// url builds an API URL from a path and optional query.
func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// checkStatus returns a *RequestError for non-2xx responses. The body is
// drained and discarded, never parsed.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return &RequestError{
		Method: resp.Request.Method,
		Path:   resp.Request.URL.Path,
		Status: resp.StatusCode,
	}
}
