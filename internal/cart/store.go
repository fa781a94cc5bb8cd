package cart

import (
	"sync"
	"time"

	"github.com/samstech/techstore/internal/domain"
)

const (
	// DefaultIdleTTL is how long an untouched cart survives before cleanup
	DefaultIdleTTL = 2 * time.Hour

	// DefaultCleanupInterval is how often the background cleanup runs
	DefaultCleanupInterval = 5 * time.Minute
)

// Store holds all in-memory carts, keyed by session id. It owns every cart
// mutation; callers only ever see deep copies.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart

	idleTTL         time.Duration
	cleanupInterval time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

type Option func(*Store)

// WithIdleTTL overrides how long an untouched cart is kept.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Store) { s.idleTTL = ttl }
}

// WithCleanupInterval overrides how often idle carts are swept.
func WithCleanupInterval(interval time.Duration) Option {
	return func(s *Store) { s.cleanupInterval = interval }
}

// NewStore creates an in-memory cart store and starts its cleanup goroutine.
func NewStore(opts ...Option) *Store {
	s := &Store{
		carts:           make(map[string]*domain.Cart),
		idleTTL:         DefaultIdleTTL,
		cleanupInterval: DefaultCleanupInterval,
		stopCleanup:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

func (s *Store) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dropIdleCarts()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *Store) dropIdleCarts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.idleTTL)
	for sessionID, cart := range s.carts {
		if cart.UpdatedAt.Before(cutoff) {
			delete(s.carts, sessionID)
		}
	}
}

// getOrCreate returns the session's cart, creating an empty one on first use.
// Callers must hold the write lock.
func (s *Store) getOrCreate(sessionID string) *domain.Cart {
	cart, exists := s.carts[sessionID]
	if !exists {
		now := time.Now()
		cart = &domain.Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}
		s.carts[sessionID] = cart
	}
	return cart
}

// AddItem adds one unit of the product: an existing line item accumulates
// quantity, otherwise a new line item is appended with quantity 1.
func (s *Store) AddItem(sessionID string, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreate(sessionID)
	for i := range cart.Items {
		if cart.Items[i].Product.ID == product.ID {
			cart.Items[i].Quantity++
			cart.UpdatedAt = time.Now()
			return
		}
	}

	now := time.Now()
	cart.Items = append(cart.Items, domain.LineItem{Product: product, Quantity: 1, AddedAt: now})
	cart.UpdatedAt = now
}

// SetQuantity overwrites a line item's quantity. A quantity of zero or below
// removes the line item. Absent product ids are a no-op either way; the UI
// only ever reaches this through items already in the cart.
func (s *Store) SetQuantity(sessionID string, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return
	}

	if quantity <= 0 {
		removeLineItem(cart, productID)
		return
	}

	for i := range cart.Items {
		if cart.Items[i].Product.ID == productID {
			cart.Items[i].Quantity = quantity
			cart.UpdatedAt = time.Now()
			return
		}
	}
}

// RemoveItem removes the product's line item if present.
func (s *Store) RemoveItem(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return
	}
	removeLineItem(cart, productID)
}

func removeLineItem(cart *domain.Cart, productID int64) {
	for i, item := range cart.Items {
		if item.Product.ID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear removes all line items. Only the checkout session calls this, after a
// successful submission.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return
	}
	cart.Items = nil
	cart.UpdatedAt = time.Now()
}

// Get returns a deep copy of the session's cart. Sessions without a cart get
// an empty one.
func (s *Store) Get(sessionID string) domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		now := time.Now()
		return domain.Cart{SessionID: sessionID, CreatedAt: now, UpdatedAt: now}
	}
	return cart.Clone()
}

// Total recomputes the cart total from current state on every call.
func (s *Store) Total(sessionID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return 0
	}
	return cart.Total()
}

// ItemCount is the sum of quantities across line items.
func (s *Store) ItemCount(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return 0
	}
	return cart.ItemCount()
}

// Size is the number of distinct products in the session's cart.
func (s *Store) Size(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, exists := s.carts[sessionID]
	if !exists {
		return 0
	}
	return cart.Size()
}

// Close stops the background cleanup and waits for it to finish.
func (s *Store) Close() error {
	close(s.stopCleanup)
	s.wg.Wait()
	return nil
}
