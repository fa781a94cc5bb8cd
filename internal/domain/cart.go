package domain

import "time"

// Cart holds one shopper's line items, insertion-ordered by first add.
// No two line items share a product id; a line item never has quantity below 1.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineItem is one catalog product plus the quantity of it currently in the cart.
type LineItem struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Total is the sum of price times quantity over all line items. It is recomputed
// from current state on every call.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Product.Price * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities, used for the cart badge.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Size is the number of distinct products in the cart.
func (c *Cart) Size() int {
	return len(c.Items)
}

// Clone returns a deep copy so callers cannot alias store-owned state.
func (c *Cart) Clone() Cart {
	out := *c
	out.Items = make([]LineItem, len(c.Items))
	copy(out.Items, c.Items)
	for i := range out.Items {
		features := make([]string, len(out.Items[i].Product.Features))
		copy(features, out.Items[i].Product.Features)
		out.Items[i].Product.Features = features
	}
	return out
}
