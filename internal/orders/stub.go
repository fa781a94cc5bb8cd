package orders

import (
	"context"
	"log"
	"time"

	"github.com/samstech/techstore/internal/domain"
)

// StubPlacer stands in for a real order backend: it waits a short fixed delay
// and succeeds. The delay simulates "submission took some time"; completion,
// not the timer, is what the checkout session reacts to.
type StubPlacer struct {
	Delay time.Duration
	Err   error
}

func (p StubPlacer) Place(ctx context.Context, order *domain.OrderConfirmation) error {
	select {
	case <-time.After(p.Delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	if p.Err != nil {
		return p.Err
	}
	log.Printf("stub placer accepted order %v (total %.2f)", order.OrderID, order.Snapshot.TotalAmount)
	return nil
}
