package domain

import "time"

type CartSnapshotItem struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

// CartSnapshot is an immutable copy of cart state taken at a specific instant.
// The checkout session captures one at submit time so the confirmed total can
// never be read after the cart is cleared.
type CartSnapshot struct {
	Items       []CartSnapshotItem `json:"items"`
	TotalAmount float64            `json:"total_amount"`
	Currency    string             `json:"currency"`
	CapturedAt  time.Time          `json:"captured_at"`
}

// SnapshotOf captures the given cart into a snapshot, computing subtotals and
// the total from the items as they stand now.
func SnapshotOf(cart Cart) CartSnapshot {
	snapshot := CartSnapshot{
		Items:      make([]CartSnapshotItem, 0, len(cart.Items)),
		Currency:   "USD",
		CapturedAt: time.Now(),
	}

	var totalAmount float64
	for _, item := range cart.Items {
		subtotal := item.Product.Price * float64(item.Quantity)
		snapshot.Items = append(snapshot.Items, CartSnapshotItem{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Subtotal:  subtotal,
		})
		totalAmount += subtotal
	}

	snapshot.TotalAmount = totalAmount
	return snapshot
}

// OrderConfirmation is the payload handed to the order placement backend when
// a checkout submission succeeds validation.
type OrderConfirmation struct {
	OrderID   string       `json:"order_id"`
	SessionID string       `json:"session_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Address   string       `json:"address"`
	Snapshot  CartSnapshot `json:"snapshot"`
	PlacedAt  time.Time    `json:"placed_at"`
}
