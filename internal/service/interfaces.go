// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/soko/internal/model"
)

// Local storage keys.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyLastLocation = "last_location"
)

// Storage defines the contract for our persistence layer: a string
// key/value store standing in for browser local storage.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ListingSource fetches a whole collection of one listing kind.
type ListingSource[T model.Listing] interface {
	List(ctx context.Context) ([]T, error)
}

// NearbySource additionally fetches the listings within radiusKm of center.
// The radius is applied by the server.
type NearbySource[T model.Listing] interface {
	ListingSource[T]
	Nearby(ctx context.Context, center model.Coordinate, radiusKm float64) ([]T, error)
}

// ListingWriter creates and updates listings of one kind.
type ListingWriter[T model.Listing, In any] interface {
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int, in In) (*T, error)
}

// CategorySource lists the marketplace categories.
type CategorySource interface {
	List(ctx context.Context) ([]model.Category, error)
}

// Assistant wraps the AI helper endpoints. Every result is advisory.
type Assistant interface {
	EnhanceText(ctx context.Context, text string) (string, error)
	GenerateTags(ctx context.Context, text string) ([]string, error)
	Suggestions(ctx context.Context, text string) ([]string, error)
}

// AuthAPI is the account side of the storefront API.
type AuthAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.Tokens, error)
	Register(ctx context.Context, reg model.Registration) (*model.User, error)
	Profile(ctx context.Context) (*model.User, error)
}
