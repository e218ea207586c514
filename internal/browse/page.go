// Package browse holds the state of one listing page: the fetched
// collection, the user's criteria and the derived view.
//
// The view is never patched; every change to the collection or the criteria
// recomputes it from scratch with filter.Apply.
package browse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/soko/internal/filter"
	"github.com/Veraticus/soko/internal/geo"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// Default search radii in kilometres.
const (
	DefaultServiceRadiusKm  = 20
	DefaultBusinessRadiusKm = 5
	DefaultExpandedRadiusKm = 50
)

// DefaultRadius returns the initial search radius for kind.
func DefaultRadius(kind model.Kind) float64 {
	switch kind {
	case model.KindBusiness:
		return DefaultBusinessRadiusKm
	default:
		return DefaultServiceRadiusKm
	}
}

// EmptyMessage is shown when the filtered view of kind is empty.
func EmptyMessage(kind model.Kind) string {
	return fmt.Sprintf("No %s match your search criteria. Try different filters or expand your search area.", kind)
}

// Option configures a Page.
type Option func(*options)

type options struct {
	assistant      service.Assistant
	radiusKm       float64
	expandedRadius float64
}

// WithRadius overrides the initial search radius.
func WithRadius(km float64) Option {
	return func(o *options) {
		if km > 0 {
			o.radiusKm = km
		}
	}
}

// WithExpandedRadius overrides the radius used by ExpandSearch.
func WithExpandedRadius(km float64) Option {
	return func(o *options) {
		if km > 0 {
			o.expandedRadius = km
		}
	}
}

// WithAssistant enables search suggestions.
func WithAssistant(a service.Assistant) Option {
	return func(o *options) {
		o.assistant = a
	}
}

// State is a consistent snapshot of a page for rendering.
type State[T model.Listing] struct {
	Kind        model.Kind
	Raw         []T
	View        []T
	Categories  []model.Category
	Suggestions []string
	Criteria    filter.Criteria
	Err         string
	Warning     string
	Loading     bool
	Located     bool
}

// Page is the state container for one listing page.
type Page[T model.Listing] struct {
	source     service.ListingSource[T]
	categories service.CategorySource
	resolver   *geo.Resolver
	assistant  service.Assistant

	kind           model.Kind
	raw            []T
	view           []T
	cats           []model.Category
	suggestions    []string
	criteria       filter.Criteria
	err            string
	warning        string
	expandedRadius float64
	generation     uint64
	locating       chan struct{}
	loading        bool
	located        bool

	mu sync.RWMutex
}

// NewPage creates the page for kind. categories may be nil when the page has
// no category selector.
func NewPage[T model.Listing](kind model.Kind, source service.ListingSource[T], categories service.CategorySource, resolver *geo.Resolver, opts ...Option) *Page[T] {
	o := options{radiusKm: DefaultRadius(kind), expandedRadius: DefaultExpandedRadiusKm}
	for _, opt := range opts {
		opt(&o)
	}
	if resolver == nil {
		resolver = geo.NewResolver(nil, nil)
	}

	return &Page[T]{
		kind:           kind,
		source:         source,
		categories:     categories,
		resolver:       resolver,
		assistant:      o.assistant,
		expandedRadius: o.expandedRadius,
		criteria:       filter.Criteria{RadiusKm: o.radiusKm},
		raw:            []T{},
		view:           []T{},
	}
}

// Load fetches categories and, after resolving the location, the nearby
// collection. The two run concurrently and each only touches its own
// fields. The returned error is the listing failure, if any; a category
// failure only leaves the selector empty.
func (p *Page[T]) Load(ctx context.Context) error {
	gen := p.Begin()

	var g errgroup.Group
	if p.categories != nil {
		g.Go(func() error {
			p.loadCategories(ctx)
			return nil
		})
	}

	g.Go(func() error {
		if err := p.locate(ctx, true); err != nil {
			err = fmt.Errorf("failed to load %s: %w", p.kind, err)
			p.Commit(gen, nil, err, fmt.Sprintf("Failed to load %s", p.kind))
			return err
		}

		p.mu.RLock()
		center, radius := p.criteria.Center, p.criteria.RadiusKm
		p.mu.RUnlock()

		items, err := p.Fetch(ctx, center, radius)
		if err != nil {
			err = fmt.Errorf("failed to load %s: %w", p.kind, err)
		}
		p.Commit(gen, items, err, fmt.Sprintf("Failed to load %s", p.kind))
		return err
	})

	return g.Wait()
}

// ExpandSearch refetches around the already resolved centre using the
// expanded radius. The location is not resolved again; if Load is still
// resolving it, ExpandSearch waits for that result.
func (p *Page[T]) ExpandSearch(ctx context.Context) error {
	if err := p.locate(ctx, false); err != nil {
		return fmt.Errorf("failed to expand search: %w", err)
	}

	gen := p.Begin()

	p.mu.Lock()
	p.criteria.RadiusKm = p.expandedRadius
	center := p.criteria.Center
	p.mu.Unlock()

	items, err := p.Fetch(ctx, center, p.expandedRadius)
	if err != nil {
		err = fmt.Errorf("failed to expand search: %w", err)
	}
	p.Commit(gen, items, err, "Failed to expand search area")
	return err
}

// Fetch queries the source: the nearby endpoint when the kind has one,
// otherwise the full list.
func (p *Page[T]) Fetch(ctx context.Context, center model.Coordinate, radiusKm float64) ([]T, error) {
	if nearby, ok := p.source.(service.NearbySource[T]); ok {
		return nearby.Nearby(ctx, center, radiusKm)
	}
	return p.source.List(ctx)
}

// Begin starts a fetch and returns its generation. Results of any earlier
// generation are dropped by Commit.
func (p *Page[T]) Begin() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generation++
	p.loading = true
	return p.generation
}

// Commit stores the outcome of the fetch started with gen. It reports false,
// leaving the page untouched, when a newer fetch has begun since. On failure
// the collection is emptied and message becomes the page error.
func (p *Page[T]) Commit(gen uint64, items []T, err error, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		slog.Debug("Dropping superseded response",
			"kind", p.kind,
			"generation", gen,
			"latest", p.generation)
		return false
	}

	p.loading = false
	if err != nil {
		slog.Error("Fetch failed", "kind", p.kind, "error", err)
		p.err = message
		p.raw = []T{}
	} else {
		p.err = ""
		if items == nil {
			items = []T{}
		}
		p.raw = items
	}
	p.recompute()
	return true
}

func (p *Page[T]) loadCategories(ctx context.Context) {
	cats, err := p.categories.List(ctx)
	if err != nil {
		slog.Warn("Failed to load categories", "error", err)
		cats = []model.Category{}
	}

	p.mu.Lock()
	p.cats = cats
	p.mu.Unlock()
}

// locate resolves the search centre. A resolution already in flight is
// joined rather than repeated. Without again, a page that is already located
// keeps its centre.
func (p *Page[T]) locate(ctx context.Context, again bool) error {
	p.mu.Lock()
	if p.located && !again {
		p.mu.Unlock()
		return nil
	}
	if wait := p.locating; wait != nil {
		p.mu.Unlock()
		select {
		case <-wait:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	done := make(chan struct{})
	p.locating = done
	p.mu.Unlock()

	res := p.resolver.Resolve(ctx)

	p.mu.Lock()
	p.criteria.Center = res.Coordinate
	p.warning = res.Warning
	p.located = true
	p.locating = nil
	p.mu.Unlock()
	close(done)
	return nil
}

// SetSearchTerm updates the text stage.
func (p *Page[T]) SetSearchTerm(term string) {
	p.update(func(c filter.Criteria) filter.Criteria { return c.WithSearchTerm(term) })
}

// SetCategory updates the category stage; "" means all categories.
func (p *Page[T]) SetCategory(name string) {
	p.update(func(c filter.Criteria) filter.Criteria { return c.WithCategory(name) })
}

// SetPriceRange updates the price stage from a "min-max" token.
func (p *Page[T]) SetPriceRange(token string) {
	p.update(func(c filter.Criteria) filter.Criteria { return c.WithPriceToken(token) })
}

// ResetFilters clears the text, category and price stages at once.
func (p *Page[T]) ResetFilters() {
	p.update(filter.Criteria.Reset)
}

func (p *Page[T]) update(change func(filter.Criteria) filter.Criteria) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria = change(p.criteria)
	p.recompute()
}

// recompute must be called with mu held.
func (p *Page[T]) recompute() {
	p.view = filter.Apply(p.raw, p.criteria)
}

// View returns the filtered collection.
func (p *Page[T]) View() []T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Criteria returns the current criteria.
func (p *Page[T]) Criteria() filter.Criteria {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.criteria
}

// Snapshot returns the whole page state.
func (p *Page[T]) Snapshot() State[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return State[T]{
		Kind:        p.kind,
		Raw:         p.raw,
		View:        p.view,
		Categories:  p.cats,
		Suggestions: p.suggestions,
		Criteria:    p.criteria,
		Err:         p.err,
		Warning:     p.warning,
		Loading:     p.loading,
		Located:     p.located,
	}
}
