package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"stylehub/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of the Fetcher interface
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

// fetcherFunc adapts a function to the Fetcher interface for tests that
// need to control resolution order.
type fetcherFunc func(ctx context.Context) ([]catalog.Product, error)

func (f fetcherFunc) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	return f(ctx)
}

func strPtr(s string) *string { return &s }

func sampleCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: 1, Name: "Red Graphic Tee", Category: "Men", Price: 499, Rating: 4.1, IsTrending: true},
		{ID: 2, Name: "Chino Trousers", Category: "Men", Price: 1299, Rating: 4.4},
		{ID: 3, Name: "Red Wrap Dress", Category: "Women", Price: 1899, Rating: 4.7, IsNewArrival: true},
		{ID: 4, Name: "Denim Jacket", Category: "Women", Price: 2499, Rating: 4.3, IsTrending: true},
		{ID: 5, Name: "Canvas Belt", Category: "Accessories", Price: 399, Rating: 3.8},
	}
}

func ids(products []catalog.Product) []int {
	out := make([]int, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestStore_InitialState(t *testing.T) {
	s := New(new(MockFetcher))

	status, errMsg := s.Status()
	assert.Equal(t, StatusIdle, status)
	assert.Empty(t, errMsg)
	assert.Empty(t, s.Products())
	assert.Empty(t, s.Visible())
	assert.True(t, s.Filters().IsZero())
}

func TestStore_LoadSuccess(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog(), nil).Once()
	s := New(fetcher)

	err := s.Load(context.Background())

	assert.NoError(t, err)
	status, errMsg := s.Status()
	assert.Equal(t, StatusSucceeded, status)
	assert.Empty(t, errMsg)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(s.Products()))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(s.Visible()))
	fetcher.AssertExpectations(t)
}

func TestStore_LoadKeepsFilters(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog(), nil).Once()
	s := New(fetcher)

	// Filters set before the load finishes must shape the new view.
	s.SetCategory(strPtr("Women"))
	s.Search("red")

	err := s.Load(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []int{3}, ids(s.Visible()))
	assert.Equal(t, "Women", *s.Filters().Category)
	assert.Equal(t, "red", s.Filters().SearchQuery)
}

func TestStore_LoadFailureKeepsCatalog(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog()[:3], nil).Once()
	fetcher.On("FetchProducts", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	s := New(fetcher)

	assert.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Products(), 3)

	err := s.Load(context.Background())

	assert.Error(t, err)
	status, errMsg := s.Status()
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, "connection refused", errMsg)
	assert.Len(t, s.Products(), 3, "failed load must not discard the last good catalog")
	assert.Len(t, s.Visible(), 3, "derived view unchanged by the failure")
	fetcher.AssertExpectations(t)
}

func TestStore_RetryAfterFailure(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(nil, errors.New("timeout")).Once()
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog(), nil).Once()
	s := New(fetcher)

	assert.Error(t, s.Load(context.Background()))

	assert.NoError(t, s.Load(context.Background()))

	status, errMsg := s.Status()
	assert.Equal(t, StatusSucceeded, status)
	assert.Empty(t, errMsg, "error cleared on successful retry")
	assert.Len(t, s.Products(), 5)
}

func TestStore_SupersededLoadLastWriteWins(t *testing.T) {
	first := sampleCatalog()[:2]
	second := sampleCatalog()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32

	fetcher := fetcherFunc(func(ctx context.Context) ([]catalog.Product, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// First request resolves only after the second has been applied.
			close(started)
			<-release
			return first, nil
		}
		return second, nil
	})
	s := New(fetcher)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = s.Load(context.Background())
	}()

	// Make sure the first fetch is in flight before superseding it.
	<-started

	assert.NoError(t, s.Load(context.Background()))
	assert.Len(t, s.Products(), 5)

	// Late stale resolution still applies: last write wins.
	close(release)
	wg.Wait()
	assert.Len(t, s.Products(), 2)
	status, _ := s.Status()
	assert.Equal(t, StatusSucceeded, status)
}

func TestStore_FilterTransitions(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog(), nil).Once()
	s := New(fetcher)
	assert.NoError(t, s.Load(context.Background()))

	t.Run("conjunctive search and category", func(t *testing.T) {
		s.SetCategory(strPtr("Men"))
		assert.Equal(t, []int{1, 2}, ids(s.Visible()))

		s.Search("red")
		assert.Equal(t, []int{1}, ids(s.Visible()))

		// Dropping only the category widens back to every "red" match.
		s.SetCategory(nil)
		assert.Equal(t, []int{1, 3}, ids(s.Visible()))
	})

	t.Run("clear filters keeps search", func(t *testing.T) {
		s.SetCategory(strPtr("Women"))
		s.SetSort(catalog.SortPriceDesc)

		s.ClearFilters()

		f := s.Filters()
		assert.Nil(t, f.Category)
		assert.Equal(t, catalog.SortNone, f.Sort)
		assert.Equal(t, "red", f.SearchQuery)
		assert.Equal(t, []int{1, 3}, ids(s.Visible()))
	})

	t.Run("empty search clears the query", func(t *testing.T) {
		s.Search("")
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(s.Visible()))
	})

	t.Run("sort orders the view", func(t *testing.T) {
		s.SetSort(catalog.SortPriceAsc)
		assert.Equal(t, []int{5, 1, 2, 3, 4}, ids(s.Visible()))

		s.SetSort(catalog.SortNone)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(s.Visible()))
	})

	t.Run("clearing one facet leaves the others", func(t *testing.T) {
		s.SetCategory(strPtr("Men"))
		s.SetPriceRange(&catalog.PriceRange{Min: 0, Max: 1000})
		assert.Equal(t, []int{1}, ids(s.Visible()))

		s.SetPriceRange(nil)

		f := s.Filters()
		assert.NotNil(t, f.Category)
		assert.Nil(t, f.PriceRange)
		assert.Equal(t, []int{1, 2}, ids(s.Visible()))
	})
}

func TestStore_DerivedSelectors(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog(), nil).Once()
	s := New(fetcher)
	assert.NoError(t, s.Load(context.Background()))

	assert.Equal(t, []int{1, 4}, ids(s.Trending()))
	assert.Equal(t, []int{3}, ids(s.NewArrivals()))
	assert.Equal(t, []string{"Men", "Women", "Accessories"}, s.Categories())
}

func TestStore_SnapshotIsolation(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchProducts", mock.Anything).Return(sampleCatalog(), nil).Once()
	s := New(fetcher)
	assert.NoError(t, s.Load(context.Background()))

	snap := s.Visible()
	snap[0].Name = "mutated"

	assert.Equal(t, "Red Graphic Tee", s.Visible()[0].Name)
}
