// Package api is the soko client for the marketplace REST API.
//
// Every call is a single attempt. Reads that fail for any reason (transport,
// status or decoding) wrap common.ErrLoadFailed and return no data; writes
// wrap common.ErrSaveFailed.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
)

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000/api"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4096

// requestIDHeader correlates client logs with server logs.
const requestIDHeader = "X-Request-ID"

// Client talks to the marketplace API.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL

	Businesses *Businesses
	Products   *Products
	Services   *Services
	Categories *Categories
	Auth       *Auth
	AI         *AI
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	tokens    oauth2.TokenSource
	transport http.RoundTripper
	timeout   time.Duration
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithTokenSource attaches a bearer token to every request for which the
// source yields a valid token.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *clientOptions) {
		o.tokens = ts
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: api base url %q: %w", common.ErrInvalidConfig, baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: api base url %q must be http or https", common.ErrInvalidConfig, baseURL)
	}

	o := clientOptions{timeout: DefaultTimeout, transport: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	transport := o.transport
	if o.tokens != nil {
		transport = &bearerTransport{source: o.tokens, base: transport}
	}

	c := &Client{
		baseURL: u,
		httpClient: &http.Client{
			Timeout:   o.timeout,
			Transport: transport,
		},
	}
	c.Businesses = &Businesses{resource[model.Business, *model.Business, model.BusinessInput]{client: c, path: "/businesses/"}}
	c.Products = &Products{resource[model.Product, *model.Product, model.ProductInput]{client: c, path: "/products/"}}
	c.Services = &Services{resource[model.Service, *model.Service, model.ServiceInput]{client: c, path: "/services/"}}
	c.Categories = &Categories{client: c}
	c.Auth = &Auth{client: c}
	c.AI = &AI{client: c}

	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do sends one request and returns the body of a 2xx response. Any other
// status becomes an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("API request",
		"method", method,
		"path", path,
		"query", req.URL.RawQuery,
		"status", resp.StatusCode,
		"request_id", req.Header.Get(requestIDHeader),
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(data) > maxErrorBody {
			data = data[:maxErrorBody]
		}
		return nil, newAPIError(method, path, resp.StatusCode, data)
	}

	return data, nil
}

// load performs a read and decodes the result into out.
func (c *Client) load(ctx context.Context, path string, query url.Values, out any) error {
	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrLoadFailed, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", common.ErrLoadFailed, path, err)
	}
	return nil
}

// save performs a write. out may be nil when the response body is ignored.
func (c *Client) save(ctx context.Context, method, path string, body, out any) error {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrSaveFailed, err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %w", common.ErrSaveFailed, path, err)
	}
	return nil
}

// bearerTransport adds the Authorization header only when the token source
// has a valid token, so logged-out requests go out anonymous.
type bearerTransport struct {
	source oauth2.TokenSource
	base   http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.source.Token()
	if err != nil || !token.Valid() {
		if err != nil {
			slog.Debug("Sending request without credentials", "error", err)
		}
		return t.base.RoundTrip(req)
	}

	authed := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(token),
		Base:   t.base,
	}
	return authed.RoundTrip(req)
}
