// Package cart holds a shopper's in-memory cart for one store.
//
// A Cart is session-scoped and explicitly constructed; there is no
// process-wide instance. Every mutation is atomic and readers receive
// copies, so a Cart may be shared across goroutines.
package cart

import (
	"sync"

	"github.com/roach88/storefront/internal/model"
)

// DefaultMinContactLength is the shortest contact channel that can receive
// the checkout message.
const DefaultMinContactLength = 10

// Option configures a Cart.
type Option func(*Cart)

// WithMinContactLength overrides DefaultMinContactLength.
func WithMinContactLength(n int) Option {
	return func(c *Cart) { c.minContact = n }
}

// Cart is an ordered list of line items keyed by product id, scoped to the
// selected store.
//
// Invariants: product ids are unique, every quantity is at least 1, and
// switching to a different store drops all items.
type Cart struct {
	mu         sync.RWMutex
	items      []model.LineItem
	storeID    string
	contact    string
	minContact int
}

// New creates an empty cart with no store selected.
func New(opts ...Option) *Cart {
	c := &Cart{minContact: DefaultMinContactLength}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetStore selects the store and its contact channel. If a different store
// was selected before, the items are cleared first.
func (c *Cart) SetStore(storeID, contact string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.storeID != "" && c.storeID != storeID {
		c.items = nil
	}
	c.storeID = storeID
	c.contact = contact
}

// Add increments the quantity of p's line, or appends a new line with
// quantity 1.
func (c *Cart) Add(p model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(p.ID); i >= 0 {
		c.items[i].Qty++
		return
	}
	c.items = append(c.items, model.LineItem{
		ProductID:  p.ID,
		Name:       p.Name,
		PriceCents: p.PriceCents,
		Qty:        1,
		StoreID:    p.StoreID,
	})
}

// Remove drops the line for productID. Absent ids are ignored.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.index(productID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear empties the cart and deselects the store.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.storeID = ""
	c.contact = ""
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []model.LineItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// StoreID returns the selected store, or "" if none.
func (c *Cart) StoreID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.storeID
}

// ContactChannel returns the selected store's messaging address.
func (c *Cart) ContactChannel() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.contact
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, it := range c.items {
		n += it.Qty
	}
	return n
}

// TotalAmount is the sum of quantity times unit price, in cents.
func (c *Cart) TotalAmount() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Total(c.items)
}

// CanCheckout reports whether the cart has items and a plausible contact
// channel.
func (c *Cart) CanCheckout() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) > 0 && len(c.contact) >= c.minContact
}

// Snapshot is a consistent view of a cart taken under one lock.
type Snapshot struct {
	StoreID string
	Contact string
	Items   []model.LineItem
	Total   int64
	// Ready is CanCheckout evaluated against the same contents.
	Ready bool
}

// Snapshot captures the cart's current contents.
func (c *Cart) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	items := make([]model.LineItem, len(c.items))
	copy(items, c.items)
	return Snapshot{
		StoreID: c.storeID,
		Contact: c.contact,
		Items:   items,
		Total:   Total(items),
		Ready:   len(items) > 0 && len(c.contact) >= c.minContact,
	}
}

// Total sums quantity times unit price over items.
func Total(items []model.LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += int64(it.Qty) * it.PriceCents
	}
	return sum
}

func (c *Cart) index(productID int64) int {
	for i, it := range c.items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
