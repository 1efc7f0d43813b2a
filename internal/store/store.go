package store

import (
	"context"
	"sync"

	"stylehub/internal/catalog"
	"stylehub/internal/logger"

	"go.uber.org/zap"
)

// Fetcher is the external collaborator that produces the full catalog.
// Transport and schema are its own concern; the store only consumes the
// resolved products or the failure.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
}

// Store is the shared state container for the catalog, the active filter
// set, the load lifecycle, and the derived visible view. It is the single
// owner of that state: transitions run one at a time under the mutex and
// selectors hand out settled snapshots, never partial updates.
//
// The derived view is recomputed from the full current filter set on every
// transition that can change it. Incremental filtering is deliberately
// absent: predicate interactions (search plus category, say) must always
// reflect the whole filter set.
type Store struct {
	mu      sync.Mutex
	fetcher Fetcher

	products []catalog.Product
	visible  []catalog.Product
	filters  catalog.FilterSet

	status  LoadStatus
	loadErr string
	loadSeq uint64
}

// New creates a store in the idle state with an empty catalog.
func New(fetcher Fetcher) *Store {
	return &Store{
		fetcher: fetcher,
		status:  StatusIdle,
		visible: []catalog.Product{},
	}
}

// Load requests a fresh catalog from the fetcher and applies the outcome.
//
// On success the catalog is replaced wholesale and the view is recomputed
// against the filter set current at completion time; a load never resets
// in-flight filter state. On failure the previous catalog stays as is
// (stale data beats empty data), the cause is recorded, and the status
// becomes failed. Retry is always permitted.
//
// Concurrent loads may supersede one another; completions apply in the
// order they resolve, last write wins. A stale completion is tolerated and
// logged, not suppressed.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx)

	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.status = StatusLoading
	s.mu.Unlock()

	log.Debug("catalog load started", zap.Uint64("load_seq", seq))

	products, err := s.fetcher.FetchProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.loadSeq {
		log.Warn("stale catalog load resolved",
			zap.Uint64("load_seq", seq),
			zap.Uint64("latest_seq", s.loadSeq),
		)
	}

	if err != nil {
		s.status = StatusFailed
		s.loadErr = err.Error()
		log.Error("catalog load failed", zap.Error(err))
		return err
	}

	s.status = StatusSucceeded
	s.loadErr = ""
	s.products = products
	s.recompute()

	log.Info("catalog loaded",
		zap.Int("products", len(products)),
		zap.Int("visible", len(s.visible)),
	)
	return nil
}

// recompute derives the visible view. Callers must hold s.mu.
func (s *Store) recompute() {
	s.visible = catalog.ComputeVisible(s.products, s.filters)
}

// SetCategory sets or clears (nil) the category constraint.
func (s *Store) SetCategory(category *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Category = category
	s.recompute()
}

// SetPriceRange sets or clears (nil) the price constraint.
func (s *Store) SetPriceRange(r *catalog.PriceRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.PriceRange = r
	s.recompute()
}

// SetSize sets or clears (nil) the size constraint.
func (s *Store) SetSize(size *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Size = size
	s.recompute()
}

// SetColor sets or clears (nil) the color constraint.
func (s *Store) SetColor(color *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Color = color
	s.recompute()
}

// SetSort sets the sort order; SortNone restores catalog order.
func (s *Store) SetSort(opt catalog.SortOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Sort = opt
	s.recompute()
}

// Search sets the free-text query. Search is an axis independent of the
// facet filters: only an empty query clears it, ClearFilters does not.
func (s *Store) Search(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.SearchQuery = query
	s.recompute()
}

// ClearFilters resets every facet and the sort. An active search query
// survives.
func (s *Store) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.ClearFacets()
	s.recompute()
}

// Products returns a snapshot of the full catalog.
func (s *Store) Products() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.products)
}

// Visible returns a snapshot of the derived view. An empty result is a
// valid state, distinct from a catalog that has not loaded yet; callers
// should consult Status to tell them apart.
func (s *Store) Visible() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.visible)
}

// Filters returns the active filter set.
func (s *Store) Filters() catalog.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Status returns the load status and, when failed, the recorded cause.
func (s *Store) Status() (LoadStatus, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status, s.loadErr
}

// ProductByID looks a product up in the loaded catalog.
func (s *Store) ProductByID(id int) (catalog.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

// Trending returns the catalog products flagged as trending, in catalog
// order.
func (s *Store) Trending() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Product, 0)
	for _, p := range s.products {
		if p.IsTrending {
			out = append(out, p)
		}
	}
	return out
}

// NewArrivals returns the catalog products flagged as new arrivals, in
// catalog order.
func (s *Store) NewArrivals() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]catalog.Product, 0)
	for _, p := range s.products {
		if p.IsNewArrival {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories of the loaded catalog in
// first-seen order.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(s.products))
	out := make([]string, 0)
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

func snapshot(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)
	return out
}
