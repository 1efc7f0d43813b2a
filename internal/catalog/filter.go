package catalog

// SortOption orders the derived view. The zero value keeps catalog order.
type SortOption string

const (
	SortNone       SortOption = ""
	SortPriceAsc   SortOption = "price-asc"
	SortPriceDesc  SortOption = "price-desc"
	SortRatingDesc SortOption = "rating-desc"
)

// ParseSortOption maps a wire value to a SortOption. Unknown values fall
// back to SortNone so a bad query parameter never breaks the view.
func ParseSortOption(s string) SortOption {
	switch SortOption(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc:
		return SortOption(s)
	default:
		return SortNone
	}
}

// PriceRange is a closed interval; both bounds are inclusive.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price falls within the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// FilterSet holds every active constraint on the derived view. Each field
// is independently settable and clearable; nil (or empty, for SearchQuery
// and Sort) means no constraint. Predicates are conjunctive.
type FilterSet struct {
	Category    *string     `json:"category"`
	PriceRange  *PriceRange `json:"priceRange"`
	Size        *string     `json:"size"`
	Color       *string     `json:"color"`
	Sort        SortOption  `json:"sort"`
	SearchQuery string      `json:"searchQuery"`
}

// ClearFacets returns the filter set with every facet and the sort reset.
// The search query survives: search and facet filters are independent axes,
// and only an explicit empty search clears it.
func (f FilterSet) ClearFacets() FilterSet {
	return FilterSet{SearchQuery: f.SearchQuery}
}

// IsZero reports whether no constraint is active at all.
func (f FilterSet) IsZero() bool {
	return f.Category == nil &&
		f.PriceRange == nil &&
		f.Size == nil &&
		f.Color == nil &&
		f.Sort == SortNone &&
		f.SearchQuery == ""
}
