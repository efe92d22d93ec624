package pos

import "github.com/rogerio-castellano/rfid-pos/internal/models"

// Cart is the in-progress selection for the sale being assembled. Items are
// product snapshots captured at add time, kept in insertion order, unique by
// tag. Cart is not safe for concurrent use on its own; the Terminal serializes
// access.
type Cart struct {
	items []models.Product
	byTag map[string]struct{}
}

func NewCart() *Cart {
	return &Cart{byTag: map[string]struct{}{}}
}

// Add appends the product unless its tag is already present. Returns false on
// a duplicate, leaving the cart unchanged.
func (c *Cart) Add(p models.Product) bool {
	if _, dup := c.byTag[p.TagID]; dup {
		return false
	}
	c.byTag[p.TagID] = struct{}{}
	c.items = append(c.items, p)
	return true
}

// Contains reports whether a tag is already in the cart.
func (c *Cart) Contains(tagID string) bool {
	_, ok := c.byTag[tagID]
	return ok
}

// Items returns the cart contents in insertion order.
func (c *Cart) Items() []models.Product {
	out := make([]models.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *Cart) Len() int {
	return len(c.items)
}

// Total sums the captured item prices. Recomputed on demand; the cart mutates
// often and cheaply.
func (c *Cart) Total() float64 {
	var sum float64
	for _, p := range c.items {
		sum += p.Price
	}
	return sum
}

// TagIDs returns the tags in the cart, in insertion order.
func (c *Cart) TagIDs() []string {
	tags := make([]string, len(c.items))
	for i, p := range c.items {
		tags[i] = p.TagID
	}
	return tags
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.byTag = map[string]struct{}{}
}
