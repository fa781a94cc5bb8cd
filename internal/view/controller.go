package view

import (
	"errors"
	"sync"

	"github.com/samstech/techstore/internal/catalog"
)

type Screen string

const (
	ScreenHome    Screen = "home"
	ScreenProduct Screen = "product"
)

var (
	ErrEmptyCart    = errors.New("cannot open checkout with an empty cart")
	ErrCheckoutBusy = errors.New("checkout overlay is locked during submission")
)

// CartReader is the one fact the view needs from the cart store.
type CartReader interface {
	Size(sessionID string) int
}

// SubmitGuard reports whether a checkout submission is in flight; the
// checkout overlay cannot be closed in that window.
type SubmitGuard interface {
	Busy(sessionID string) bool
}

// PageListener observes page changes: one event fires per successful SetPage.
// Scroll-to-top and the transient loading indicator hang off this hook.
type PageListener func(sessionID string, pageNumber int)

// State is one session's visibility flags. The view controller owns no cart
// or checkout data, only what is on screen.
type State struct {
	Screen       Screen `json:"screen"`
	ProductID    int64  `json:"product_id,omitempty"`
	CartOpen     bool   `json:"cart_open"`
	CheckoutOpen bool   `json:"checkout_open"`
	Page         int    `json:"page"`
}

// Controller tracks per-session view state: visible screen, open overlays and
// the current catalog page.
type Controller struct {
	mu     sync.Mutex
	states map[string]*State

	catalog   *catalog.Catalog
	carts     CartReader
	guard     SubmitGuard
	listeners []PageListener
}

func NewController(cat *catalog.Catalog, carts CartReader, guard SubmitGuard) *Controller {
	return &Controller{
		states:  make(map[string]*State),
		catalog: cat,
		carts:   carts,
		guard:   guard,
	}
}

// OnPageChange registers a page change listener. Not safe to call once the
// controller is serving requests.
func (c *Controller) OnPageChange(fn PageListener) {
	c.listeners = append(c.listeners, fn)
}

// state returns the session's view state, creating the default (home, page 1)
// on first use. Callers must hold the lock.
func (c *Controller) state(sessionID string) *State {
	s, ok := c.states[sessionID]
	if !ok {
		s = &State{Screen: ScreenHome, Page: 1}
		c.states[sessionID] = s
	}
	return s
}

// State returns a copy of the session's current view state.
func (c *Controller) State(sessionID string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.state(sessionID)
}

func (c *Controller) ShowHome(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state(sessionID)
	s.Screen = ScreenHome
	s.ProductID = 0
}

// ShowProduct switches to the product detail screen.
func (c *Controller) ShowProduct(sessionID string, productID int64) error {
	if _, err := c.catalog.Get(productID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state(sessionID)
	s.Screen = ScreenProduct
	s.ProductID = productID
	return nil
}

func (c *Controller) OpenCart(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state(sessionID).CartOpen = true
}

func (c *Controller) CloseCart(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state(sessionID).CartOpen = false
}

// OpenCheckout opens the checkout dialog. The cart must hold at least one
// item; the affordance is disabled otherwise and reaching this empty is a
// caller error.
func (c *Controller) OpenCheckout(sessionID string) error {
	if c.carts.Size(sessionID) == 0 {
		return ErrEmptyCart
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state(sessionID).CheckoutOpen = true
	return nil
}

// CloseCheckout closes the checkout dialog, unless a submission is in flight.
func (c *Controller) CloseCheckout(sessionID string) error {
	if c.guard != nil && c.guard.Busy(sessionID) {
		return ErrCheckoutBusy
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state(sessionID).CheckoutOpen = false
	return nil
}

// CloseOverlays shuts both the cart drawer and the checkout dialog. The
// checkout session calls this after a successful submission, so it skips the
// in-flight guard.
func (c *Controller) CloseOverlays(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state(sessionID)
	s.CartOpen = false
	s.CheckoutOpen = false
}

// SetPage changes the current catalog page and fires exactly one page-change
// event. Out-of-range pages are rejected without an event.
func (c *Controller) SetPage(sessionID string, pageNumber int) error {
	if _, err := c.catalog.Window(pageNumber); err != nil {
		return err
	}

	c.mu.Lock()
	c.state(sessionID).Page = pageNumber
	c.mu.Unlock()

	for _, fn := range c.listeners {
		fn(sessionID, pageNumber)
	}
	return nil
}
