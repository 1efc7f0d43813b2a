package catalog

// Color is one selectable color of a product. Name is the value filters
// match against; Code is the hex swatch shown by the UI.
type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Product is a single catalog entry. Products are immutable once loaded;
// the catalog is replaced wholesale on a successful load, never patched.
type Product struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"originalPrice,omitempty"`
	DiscountPercentage *float64 `json:"discountPercentage,omitempty"`
	Image              string   `json:"image"`
	Description        string   `json:"description"`
	Rating             float64  `json:"rating"`
	Sizes              []string `json:"sizes"`
	Colors             []Color  `json:"colors"`
	IsTrending         bool     `json:"isTrending"`
	IsNewArrival       bool     `json:"isNewArrival"`
}

// HasSize reports whether the product is offered in the given size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether the product has a color entry with that exact name.
func (p Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}
