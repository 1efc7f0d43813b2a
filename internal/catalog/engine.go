package catalog

import (
	"sort"
	"strings"
)

// ComputeVisible derives the visible product list from a catalog snapshot
// and the full current filter set. It is pure: the inputs are never
// mutated and the same inputs always produce the same sequence.
//
// Predicates apply in a fixed order (search, category, price, size, color)
// followed by an optional stable sort. The order only pins down the output
// sequence; predicates are conjunctive, so it does not affect which
// products survive. With no sort the result keeps catalog order.
func ComputeVisible(products []Product, filters FilterSet) []Product {
	visible := make([]Product, 0, len(products))

	query := strings.ToLower(strings.TrimSpace(filters.SearchQuery))

	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if filters.Category != nil && p.Category != *filters.Category {
			continue
		}
		if filters.PriceRange != nil && !filters.PriceRange.Contains(p.Price) {
			continue
		}
		if filters.Size != nil && !p.HasSize(*filters.Size) {
			continue
		}
		if filters.Color != nil && !p.HasColor(*filters.Color) {
			continue
		}
		visible = append(visible, p)
	}

	applySort(visible, filters.Sort)
	return visible
}

// matchesQuery reports whether the lower-cased query is a substring of the
// product's name, description, brand, or category.
func matchesQuery(p Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Brand), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// applySort orders the slice in place. Ties keep the relative order of the
// filtering step, so equal keys never shuffle between recomputations.
func applySort(products []Product, opt SortOption) {
	switch opt {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	}
}
