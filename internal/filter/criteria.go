// Package filter narrows a fetched listing collection down to what the user
// asked to see.
//
// The pipeline is a conjunction of independent stages. A stage whose
// criterion is unset is skipped outright rather than evaluated as a vacuous
// predicate. Distance is not a stage here: nearby collections arrive from
// the API already bounded by radius.
package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/soko/internal/model"
)

// PriceRange is an inclusive KES price band.
type PriceRange struct {
	Min float64
	Max float64
}

// Contains reports whether price lies within the band, bounds included.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Token renders the range in the "min-max" form ParsePriceRange reads.
func (r PriceRange) Token() string {
	return strconv.FormatFloat(r.Min, 'f', -1, 64) + "-" + strconv.FormatFloat(r.Max, 'f', -1, 64)
}

// ParsePriceRange reads a "min-max" token such as "500-2000".
// It returns nil, meaning the price stage stays inactive, for an empty token
// or when either bound is missing or not a finite number.
func ParsePriceRange(token string) *PriceRange {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}

	lo, hi, found := strings.Cut(token, "-")
	if !found {
		return nil
	}

	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if lo == "" || hi == "" {
		return nil
	}

	minPrice, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return nil
	}
	maxPrice, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return nil
	}
	if !finite(minPrice) || !finite(maxPrice) {
		return nil
	}

	return &PriceRange{Min: minPrice, Max: maxPrice}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// PriceOption is one entry of the storefront's price selector.
type PriceOption struct {
	Label string
	Token string
}

// PriceOptions lists the selectable bands, "Any Price" first.
var PriceOptions = []PriceOption{
	{Label: "Any Price", Token: ""},
	{Label: "Under 500", Token: "0-500"},
	{Label: "500 - 2,000", Token: "500-2000"},
	{Label: "2,000 - 5,000", Token: "2000-5000"},
	{Label: "5,000 - 10,000", Token: "5000-10000"},
	{Label: "Over 10,000", Token: "10000-999999"},
}

// PriceLabel returns the selector label for token, or the token itself.
func PriceLabel(token string) string {
	for _, opt := range PriceOptions {
		if opt.Token == token {
			return opt.Label
		}
	}
	return token
}

// Criteria is everything the user entered to narrow a collection.
type Criteria struct {
	PriceRange   *PriceRange
	SearchTerm   string
	CategoryName string
	// PriceToken is the raw selector value PriceRange was parsed from.
	PriceToken   string
	Center       model.Coordinate
	RadiusKm     float64
}

// WithSearchTerm returns c with the text stage set to term.
func (c Criteria) WithSearchTerm(term string) Criteria {
	c.SearchTerm = term
	return c
}

// WithCategory returns c with the category stage set to name.
func (c Criteria) WithCategory(name string) Criteria {
	c.CategoryName = name
	return c
}

// WithPriceToken returns c with the price stage parsed from token.
// A malformed token leaves the stage inactive.
func (c Criteria) WithPriceToken(token string) Criteria {
	c.PriceToken = token
	c.PriceRange = ParsePriceRange(token)
	return c
}

// Reset clears the text, category and price stages in one step.
// The search centre and radius are kept.
func (c Criteria) Reset() Criteria {
	return Criteria{Center: c.Center, RadiusKm: c.RadiusKm}
}

// Active reports whether any stage would filter.
func (c Criteria) Active() bool {
	return c.SearchTerm != "" || c.CategoryName != "" || c.PriceRange != nil
}
