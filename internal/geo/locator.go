// Package geo resolves the user's search centre and measures distances.
//
// Resolution never fails: when the locator cannot produce a position the
// resolver falls back to central Nairobi and attaches an advisory warning.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/soko/internal/model"
)

// Locator errors.
var (
	// ErrPermissionDenied means the user declined to share a position.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUnsupported means no location capability is available.
	ErrUnsupported = errors.New("geolocation is not supported")
)

// Locator abstracts the device location capability.
type Locator interface {
	Locate(ctx context.Context) (model.Coordinate, error)
}

// StaticLocator always reports a fixed, configured position.
type StaticLocator struct {
	Coordinate model.Coordinate
}

// Locate implements Locator.
func (s StaticLocator) Locate(ctx context.Context) (model.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return model.Coordinate{}, err
	}
	return s.Coordinate, nil
}

// Unsupported is the locator for a client without any location capability.
type Unsupported struct{}

// Locate implements Locator.
func (Unsupported) Locate(context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, ErrUnsupported
}

// Denied is the locator for a user who refuses to share a position.
type Denied struct{}

// Locate implements Locator.
func (Denied) Locate(context.Context) (model.Coordinate, error) {
	return model.Coordinate{}, ErrPermissionDenied
}

// DefaultIPLookupURL is queried by IPLocator unless configured otherwise.
const DefaultIPLookupURL = "http://ip-api.com/json/"

// IPLocator estimates the position from the public IP address.
type IPLocator struct {
	httpClient *http.Client
	url        string
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPLocator creates an IP locator querying url with a single request.
func NewIPLocator(url string, timeout time.Duration) *IPLocator {
	if url == "" {
		url = DefaultIPLookupURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &IPLocator{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Locate implements Locator.
func (l *IPLocator) Locate(ctx context.Context) (model.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}

	slog.Debug("Looking up location from IP", "url", l.url)

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("failed to look up location: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.Coordinate{}, fmt.Errorf("location lookup error: %d - %s", resp.StatusCode, string(body))
	}

	var result ipLookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Coordinate{}, fmt.Errorf("failed to decode location: %w", err)
	}
	if result.Status != "success" {
		return model.Coordinate{}, fmt.Errorf("location lookup failed: %s", result.Message)
	}

	return model.Coordinate{Lat: result.Lat, Lng: result.Lon}, nil
}
