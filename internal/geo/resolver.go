package geo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// Fallback is the centre used when no position can be obtained: Nairobi CBD.
var Fallback = model.Coordinate{Lat: -1.2921, Lng: 36.8219}

// Advisory messages attached to a fallback resolution.
const (
	WarnUnavailable = "Could not get your location. Using default location."
	WarnUnsupported = "Geolocation is not supported on this device. Using default location."
)

// Resolution is the outcome of one resolve attempt.
type Resolution struct {
	Warning    string
	Coordinate model.Coordinate
	Fallback   bool
}

// Resolver turns a Locator into a search centre.
type Resolver struct {
	locator Locator
	store   service.Storage
}

// NewResolver creates a resolver. store may be nil; when set, every
// successfully located position is remembered under service.KeyLastLocation.
func NewResolver(locator Locator, store service.Storage) *Resolver {
	if locator == nil {
		locator = Unsupported{}
	}
	return &Resolver{locator: locator, store: store}
}

// Resolve makes a single locate attempt. It never returns an error: any
// failure yields the fallback centre plus a warning.
func (r *Resolver) Resolve(ctx context.Context) Resolution {
	coord, err := r.locator.Locate(ctx)
	if err != nil {
		warning := WarnUnavailable
		if errors.Is(err, ErrUnsupported) {
			warning = WarnUnsupported
		}
		slog.Warn("Using default location", "error", err)
		return Resolution{Coordinate: Fallback, Warning: warning, Fallback: true}
	}

	r.remember(ctx, coord)
	return Resolution{Coordinate: coord}
}

// Last returns the most recently located position, if one was stored.
func (r *Resolver) Last(ctx context.Context) (model.Coordinate, bool) {
	if r.store == nil {
		return model.Coordinate{}, false
	}
	raw, err := r.store.Get(ctx, service.KeyLastLocation)
	if err != nil {
		return model.Coordinate{}, false
	}
	var coord model.Coordinate
	if err := json.Unmarshal([]byte(raw), &coord); err != nil {
		slog.Debug("Ignoring unreadable stored location", "error", err)
		return model.Coordinate{}, false
	}
	return coord, true
}

func (r *Resolver) remember(ctx context.Context, coord model.Coordinate) {
	if r.store == nil {
		return
	}
	data, err := json.Marshal(coord)
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, service.KeyLastLocation, string(data)); err != nil {
		slog.Debug("Failed to remember location", "error", err)
	}
}
