package filter

import (
	"strings"

	"github.com/Veraticus/soko/internal/model"
)

// Stage is one predicate of the pipeline.
type Stage[T model.Listing] struct {
	Keep func(T) bool
	Name string
}

// Stages returns the active stages for c, in text, category, price order.
// Inactive criteria contribute no stage.
func Stages[T model.Listing](c Criteria) []Stage[T] {
	var stages []Stage[T]

	if c.SearchTerm != "" {
		stages = append(stages, Stage[T]{Name: "text", Keep: func(item T) bool {
			return MatchesText(item, c.SearchTerm)
		}})
	}
	if c.CategoryName != "" {
		stages = append(stages, Stage[T]{Name: "category", Keep: func(item T) bool {
			return MatchesCategory(item, c.CategoryName)
		}})
	}
	if c.PriceRange != nil {
		band := *c.PriceRange
		stages = append(stages, Stage[T]{Name: "price", Keep: func(item T) bool {
			return MatchesPrice(item, band)
		}})
	}

	return stages
}

// Apply returns the items of raw that pass every active stage of c, in
// their original relative order. raw is never modified. With no active
// stage the result holds exactly the items of raw.
func Apply[T model.Listing](raw []T, c Criteria) []T {
	return Run(raw, Stages[T](c)...)
}

// Run applies stages in sequence. Each stage produces a fresh slice.
func Run[T model.Listing](raw []T, stages ...Stage[T]) []T {
	result := make([]T, len(raw))
	copy(result, raw)

	for _, stage := range stages {
		kept := make([]T, 0, len(result))
		for _, item := range result {
			if stage.Keep(item) {
				kept = append(kept, item)
			}
		}
		result = kept
	}

	return result
}

// MatchesText reports whether the name/title or description contains term,
// ignoring case. An empty term matches everything.
func MatchesText(item model.Listing, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(item.DisplayName()), needle) ||
		strings.Contains(strings.ToLower(item.Summary()), needle)
}

// MatchesCategory reports whether the item's resolved category name equals
// name, ignoring case. Items without a resolved category never match.
func MatchesCategory(item model.Listing, name string) bool {
	category, ok := item.CategoryName()
	if !ok {
		return false
	}
	return strings.EqualFold(category, name)
}

// MatchesPrice reports whether the item's effective price lies in band.
// Items without any price never match.
func MatchesPrice(item model.Listing, band PriceRange) bool {
	price, ok := item.EffectivePrice()
	if !ok {
		return false
	}
	return band.Contains(price)
}
