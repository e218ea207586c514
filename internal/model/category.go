package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Category is a marketplace category such as "Microcontrollers" or "Repairs".
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
	ID   int    `json:"id"`
}

// CategoryRef is a listing's reference to a category.
//
// The API sends it either as a bare id or as an embedded object, and null
// when the listing is uncategorised. The fetcher resolves bare ids so that
// everything past the API boundary sees an embedded {id, name}.
type CategoryRef struct {
	name  string
	id    int
	valid bool
}

// NewCategoryRef returns a resolved reference to cat.
func NewCategoryRef(cat Category) CategoryRef {
	return CategoryRef{id: cat.ID, name: cat.Name, valid: true}
}

// CategoryID returns an unresolved reference holding only an id.
func CategoryID(id int) CategoryRef {
	return CategoryRef{id: id, valid: true}
}

// ID returns the referenced category id, or 0 when absent.
func (r CategoryRef) ID() int {
	return r.id
}

// Name returns the display name, empty until resolved.
func (r CategoryRef) Name() string {
	return r.name
}

// IsSet reports whether the listing references a category at all.
func (r CategoryRef) IsSet() bool {
	return r.valid
}

// Resolved reports whether the reference carries a display name.
func (r CategoryRef) Resolved() bool {
	return r.valid && r.name != ""
}

// Resolve fills in the display name from the category index.
// Unknown ids are left unresolved.
func (r CategoryRef) Resolve(index map[int]Category) CategoryRef {
	if !r.valid || r.name != "" {
		return r
	}
	if cat, ok := index[r.id]; ok {
		r.name = cat.Name
	}
	return r
}

// UnmarshalJSON accepts null, an integer id, a numeric string or {id, name}.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = CategoryRef{}
		return nil
	}

	switch data[0] {
	case '{':
		var cat Category
		if err := json.Unmarshal(data, &cat); err != nil {
			return fmt.Errorf("invalid category object: %w", err)
		}
		*r = NewCategoryRef(cat)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid category id: %w", err)
		}
		if s == "" {
			*r = CategoryRef{}
			return nil
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid category id %q: %w", s, err)
		}
		*r = CategoryID(id)
		return nil
	default:
		var id int
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("invalid category id: %w", err)
		}
		*r = CategoryID(id)
		return nil
	}
}

// MarshalJSON writes the id, which is what the write endpoints expect.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

// IndexCategories builds an id lookup for Resolve.
func IndexCategories(categories []Category) map[int]Category {
	index := make(map[int]Category, len(categories))
	for _, cat := range categories {
		index[cat.ID] = cat
	}
	return index
}
