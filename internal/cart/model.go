package cart

import "stylehub/internal/catalog"

// ItemKey identifies a unique line item: the same product added with a
// different size or color is a separate line. Two additions sharing a key
// consolidate into one line item.
type ItemKey struct {
	ProductID int    `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// LineItem is one entry in the ledger. Product is held by value: products
// are immutable once loaded, so the copy always reflects the live price.
type LineItem struct {
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
}

// Key returns the merge-key for this line item.
func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.Product.ID, Size: li.SelectedSize, Color: li.SelectedColor}
}

// Subtotal is the line's contribution to the cart total.
func (li LineItem) Subtotal() float64 {
	return li.Product.Price * float64(li.Quantity)
}
