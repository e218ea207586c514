package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// resource implements the list/get/create/update/delete calls shared by
// every listing collection.
type resource[T model.Listing, PT categorized[T], In any] struct {
	client *Client
	path   string
}

// List fetches the whole collection.
func (r resource[T, PT, In]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, r.path, nil)
}

func (r resource[T, PT, In]) list(ctx context.Context, path string, query url.Values) ([]T, error) {
	data, err := r.client.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrLoadFailed, err)
	}

	items, err := decodeCollection[T](data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", common.ErrLoadFailed, path, err)
	}

	normalizeCategories[T, PT](ctx, r.client, items)
	return items, nil
}

// Get fetches one listing by id.
func (r resource[T, PT, In]) Get(ctx context.Context, id int) (*T, error) {
	var item T
	if err := r.client.load(ctx, r.itemPath(id), nil, &item); err != nil {
		return nil, err
	}
	items := []T{item}
	normalizeCategories[T, PT](ctx, r.client, items)
	return &items[0], nil
}

// Create posts a new listing and returns it as stored.
func (r resource[T, PT, In]) Create(ctx context.Context, in In) (*T, error) {
	var created T
	if err := r.client.save(ctx, http.MethodPost, r.path, in, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the listing with the given id.
func (r resource[T, PT, In]) Update(ctx context.Context, id int, in In) (*T, error) {
	var updated T
	if err := r.client.save(ctx, http.MethodPut, r.itemPath(id), in, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the listing with the given id.
func (r resource[T, PT, In]) Delete(ctx context.Context, id int) error {
	return r.client.save(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r resource[T, PT, In]) itemPath(id int) string {
	return r.path + strconv.Itoa(id) + "/"
}

func (r resource[T, PT, In]) filtered(ctx context.Context, key string, value int) ([]T, error) {
	return r.list(ctx, r.path, url.Values{key: {strconv.Itoa(value)}})
}

func nearbyQuery(center model.Coordinate, radiusKm float64) url.Values {
	return url.Values{
		"lat":    {strconv.FormatFloat(center.Lat, 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(center.Lng, 'f', -1, 64)},
		"radius": {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
	}
}

// Businesses is the businesses collection.
type Businesses struct {
	resource[model.Business, *model.Business, model.BusinessInput]
}

// Nearby lists businesses within radiusKm of center.
func (b *Businesses) Nearby(ctx context.Context, center model.Coordinate, radiusKm float64) ([]model.Business, error) {
	return b.list(ctx, "/nearby-businesses/", nearbyQuery(center, radiusKm))
}

// ByOwner lists the businesses owned by a user.
func (b *Businesses) ByOwner(ctx context.Context, userID int) ([]model.Business, error) {
	return b.filtered(ctx, "owner", userID)
}

// Products is the products collection. It has no nearby endpoint.
type Products struct {
	resource[model.Product, *model.Product, model.ProductInput]
}

// BySeller lists the products sold by a user.
func (p *Products) BySeller(ctx context.Context, userID int) ([]model.Product, error) {
	return p.filtered(ctx, "seller", userID)
}

// Services is the services collection.
type Services struct {
	resource[model.Service, *model.Service, model.ServiceInput]
}

// Nearby lists services within radiusKm of center.
func (s *Services) Nearby(ctx context.Context, center model.Coordinate, radiusKm float64) ([]model.Service, error) {
	return s.list(ctx, s.path, nearbyQuery(center, radiusKm))
}

// ByProvider lists the services offered by a user.
func (s *Services) ByProvider(ctx context.Context, userID int) ([]model.Service, error) {
	return s.filtered(ctx, "provider", userID)
}

// Pending lists services awaiting admin verification.
func (s *Services) Pending(ctx context.Context) ([]model.Service, error) {
	return s.list(ctx, s.path, url.Values{"verified": {"false"}})
}

// Verify marks a service as verified. Admin only.
func (s *Services) Verify(ctx context.Context, id int) error {
	return s.client.save(ctx, http.MethodPost, s.itemPath(id)+"verify/", nil, nil)
}

// Categories is the read-only categories collection.
type Categories struct {
	client *Client
}

// List fetches every category.
func (c *Categories) List(ctx context.Context) ([]model.Category, error) {
	data, err := c.client.do(ctx, http.MethodGet, "/categories/", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrLoadFailed, err)
	}
	categories, err := decodeCollection[model.Category](data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode /categories/: %w", common.ErrLoadFailed, err)
	}
	return categories, nil
}

var (
	_ service.NearbySource[model.Business]                       = (*Businesses)(nil)
	_ service.NearbySource[model.Service]                        = (*Services)(nil)
	_ service.ListingSource[model.Product]                       = (*Products)(nil)
	_ service.ListingWriter[model.Business, model.BusinessInput] = (*Businesses)(nil)
	_ service.ListingWriter[model.Product, model.ProductInput]   = (*Products)(nil)
	_ service.ListingWriter[model.Service, model.ServiceInput]   = (*Services)(nil)
	_ service.CategorySource                                     = (*Categories)(nil)
)
