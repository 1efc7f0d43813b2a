package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stylehub/internal/catalog"
	"stylehub/internal/logger"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	productsPath    = "/products"
	searchCacheSize = 64
)

// Fetch pacing against the remote catalog source.
const (
	fetchRate  = rate.Limit(5)
	fetchBurst = 10
)

// API talks to the remote product source. It owns no state the UI reads;
// callers consume the resolved products or the error.
//
// Superseding catalog loads tend to arrive in bursts, so concurrent
// fetches are collapsed into one upstream request and all callers share
// its outcome. Search results are memoized per query.
type API struct {
	baseURL string
	httpc   *http.Client
	limiter *rate.Limiter
	flight  singleflight.Group
	search  *lru.Cache[string, []catalog.Product]
}

// New creates a client for the catalog source at baseURL.
func New(baseURL string, timeout time.Duration) *API {
	// Size is a small constant, lru.New only errors on size <= 0.
	cache, _ := lru.New[string, []catalog.Product](searchCacheSize)

	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(fetchRate, fetchBurst),
		search:  cache,
	}
}

// FetchProducts retrieves the full catalog. Records that violate the
// product invariants are repaired or dropped by the mapper; unrecognized
// fields on incoming records are ignored.
func (a *API) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	v, err, shared := a.flight.Do("products", func() (any, error) {
		return a.fetchProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.FromCtx(ctx).Debug("catalog fetch shared with concurrent caller")
	}
	return v.([]catalog.Product), nil
}

func (a *API) fetchProducts(ctx context.Context) ([]catalog.Product, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+productsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	resp, err := a.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}

	var records []wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("fetch products: decode: %w", err)
	}

	products := mapProducts(ctx, records)

	logger.FromCtx(ctx).Debug("catalog fetched",
		zap.Int("records", len(records)),
		zap.Int("products", len(products)),
	)
	return products, nil
}

// SearchProducts is the collaborator's search variant: the source exposes
// no search endpoint, so the full catalog is fetched and filtered here,
// matching the query against name, description, brand, and category.
// Results are cached per normalized query.
func (a *API) SearchProducts(ctx context.Context, query string) ([]catalog.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return a.FetchProducts(ctx)
	}

	if hit, ok := a.search.Get(q); ok {
		return hit, nil
	}

	all, err := a.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}

	matches := make([]catalog.Product, 0)
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			matches = append(matches, p)
		}
	}

	a.search.Add(q, matches)
	return matches, nil
}
