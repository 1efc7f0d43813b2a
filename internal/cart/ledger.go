package cart

import (
	"sync"

	"stylehub/internal/catalog"
	"stylehub/internal/logger"

	"go.uber.org/zap"
)

// Ledger owns the cart state: an ordered sequence of line items plus the
// open/closed flag the sidebar reads. All operations are synchronous and
// guarded by a single mutex, so readers always see a settled snapshot.
//
// Malformed transition requests (quantity below 1, unknown keys) are
// rejected silently rather than surfaced as errors: they originate from UI
// elements that already prevent them, and a dedicated Remove exists for
// deletion.
type Ledger struct {
	mu    sync.Mutex
	items []LineItem
	open  bool
}

// NewLedger creates an empty cart ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add puts quantity units of a product variant into the cart. If a line
// item with the same merge-key already exists its quantity is incremented;
// otherwise a new line item is appended, preserving insertion order.
// A quantity below 1 is a no-op.
func (l *Ledger) Add(p catalog.Product, quantity int, size, color string) {
	if quantity < 1 {
		logger.L().Debug("add to cart rejected",
			zap.Int("product_id", p.ID),
			zap.Int("quantity", quantity),
		)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := ItemKey{ProductID: p.ID, Size: size, Color: color}
	for i := range l.items {
		if l.items[i].Key() == key {
			l.items[i].Quantity += quantity
			return
		}
	}

	l.items = append(l.items, LineItem{
		Product:       p,
		Quantity:      quantity,
		SelectedSize:  size,
		SelectedColor: color,
	})
}

// Remove deletes exactly the line item with the given key. The remaining
// items keep their relative order. An unknown key is a no-op.
func (l *Ledger) Remove(key ItemKey) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Key() == key {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}

	logger.L().Debug("remove from cart ignored, unknown key",
		zap.Int("product_id", key.ProductID),
		zap.String("size", key.Size),
		zap.String("color", key.Color),
	)
}

// SetQuantity replaces the quantity of the line item with the given key.
// Quantities below 1 are rejected and the line item is left unchanged;
// deletion requires an explicit Remove.
func (l *Ledger) SetQuantity(key ItemKey, quantity int) {
	if quantity < 1 {
		logger.L().Debug("set quantity rejected",
			zap.Int("product_id", key.ProductID),
			zap.Int("quantity", quantity),
		)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		if l.items[i].Key() == key {
			l.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the ledger unconditionally. The open flag is untouched.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}

// Items returns a copy of the line items in insertion order.
func (l *Ledger) Items() []LineItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Total sums price times quantity across all line items.
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total float64
	for _, li := range l.items {
		total += li.Subtotal()
	}
	return total
}

// ItemCount sums quantities across all line items, for the header badge.
// Distinct from the number of line items.
func (l *Ledger) ItemCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var count int
	for _, li := range l.items {
		count += li.Quantity
	}
	return count
}

// IsOpen reports whether the cart sidebar is open.
func (l *Ledger) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Toggle flips the sidebar open/closed.
func (l *Ledger) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = !l.open
}

// Open opens the sidebar.
func (l *Ledger) Open() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = true
}

// Close closes the sidebar.
func (l *Ledger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.open = false
}
