package client

import (
	"context"

	"stylehub/internal/catalog"
	"stylehub/internal/logger"

	"go.uber.org/zap"
)

// wireProduct is the boundary schema of the remote source. Fields this
// core does not recognize are dropped by the decoder.
type wireProduct struct {
	ID                 int      `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"originalPrice"`
	DiscountPercentage *float64 `json:"discountPercentage"`
	Image              string   `json:"image"`
	Description        string   `json:"description"`
	Rating             float64  `json:"rating"`
	Sizes              []string `json:"sizes"`
	Colors             []struct {
		Name string `json:"name"`
		Code string `json:"code"`
	} `json:"colors"`
	IsTrending   bool `json:"isTrending"`
	IsNewArrival bool `json:"isNewArrival"`
}

// mapProducts converts wire records to catalog products, repairing fields
// that violate the product invariants and dropping records that cannot be
// repaired.
func mapProducts(ctx context.Context, records []wireProduct) []catalog.Product {
	log := logger.FromCtx(ctx)

	products := make([]catalog.Product, 0, len(records))
	for _, r := range records {
		p, ok := mapProduct(r)
		if !ok {
			log.Warn("dropping invalid product record",
				zap.Int("id", r.ID),
				zap.Float64("price", r.Price),
			)
			continue
		}
		products = append(products, p)
	}
	return products
}

func mapProduct(r wireProduct) (catalog.Product, bool) {
	// A negative price leaves nothing usable to display or total.
	if r.Price < 0 {
		return catalog.Product{}, false
	}

	p := catalog.Product{
		ID:           r.ID,
		Name:         r.Name,
		Brand:        r.Brand,
		Category:     r.Category,
		Price:        r.Price,
		Image:        r.Image,
		Description:  r.Description,
		Rating:       r.Rating,
		IsTrending:   r.IsTrending,
		IsNewArrival: r.IsNewArrival,
	}

	// An original price only makes sense if a discount actually applies,
	// and the discount percentage only alongside the original price.
	if r.OriginalPrice != nil && *r.OriginalPrice >= r.Price {
		p.OriginalPrice = r.OriginalPrice
		p.DiscountPercentage = r.DiscountPercentage
	}

	p.Sizes = r.Sizes
	if p.Sizes == nil {
		p.Sizes = []string{}
	}

	// Color names are unique within a product; first occurrence wins.
	seen := make(map[string]struct{}, len(r.Colors))
	p.Colors = make([]catalog.Color, 0, len(r.Colors))
	for _, c := range r.Colors {
		if _, ok := seen[c.Name]; ok {
			continue
		}
		seen[c.Name] = struct{}{}
		p.Colors = append(p.Colors, catalog.Color{Name: c.Name, Code: c.Code})
	}

	return p, true
}
