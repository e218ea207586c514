package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Veraticus/soko/internal/model"
)

var errUnexpectedShape = errors.New("expected a JSON array or a paginated object")

// page is the paginated envelope returned by list endpoints.
type page[T any] struct {
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
	Count    int             `json:"count"`
}

// decodeCollection accepts a bare array or a paginated envelope. Only the
// returned page is used.
func decodeCollection[T any](data []byte) ([]T, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, errUnexpectedShape
	}

	switch data[0] {
	case '[':
		items := []T{}
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		var env page[T]
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, err
		}
		if len(env.Results) == 0 {
			return nil, errUnexpectedShape
		}
		if env.Next != nil {
			slog.Debug("Collection has more pages", "count", env.Count, "next", *env.Next)
		}
		return decodeCollection[T](env.Results)
	default:
		return nil, errUnexpectedShape
	}
}

// categorized is a pointer to a listing whose category reference can be
// normalised in place.
type categorized[T any] interface {
	*T
	model.Categorized
}

// normalizeCategories resolves every bare category id in items against the
// categories endpoint, which is fetched at most once and only when needed.
// Unknown ids stay unnamed.
func normalizeCategories[T any, PT categorized[T]](ctx context.Context, c *Client, items []T) {
	needed := false
	for i := range items {
		ref := PT(&items[i]).CategoryRef()
		if ref.IsSet() && !ref.Resolved() {
			needed = true
			break
		}
	}
	if !needed {
		return
	}

	categories, err := c.Categories.List(ctx)
	if err != nil {
		slog.Warn("Could not resolve category names", "error", err)
		return
	}

	index := model.IndexCategories(categories)
	for i := range items {
		item := PT(&items[i])
		item.SetCategoryRef(item.CategoryRef().Resolve(index))
	}
}
