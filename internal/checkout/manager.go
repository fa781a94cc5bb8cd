package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samstech/techstore/internal/domain"
	"github.com/samstech/techstore/internal/notify"
)

// DefaultSubmitTimeout bounds the asynchronous order placement step. Expiry
// maps to the submission failure path, never to a stuck SUBMITTING state.
const DefaultSubmitTimeout = 10 * time.Second

// CartAccess is the slice of the cart store the checkout session needs: a
// snapshot read at submit time and a clear on success.
type CartAccess interface {
	Get(sessionID string) domain.Cart
	Clear(sessionID string)
}

// OrderPlacer performs the asynchronous order placement. Its completion, not
// a wall clock, drives the SUBMITTING transition.
type OrderPlacer interface {
	Place(ctx context.Context, order *domain.OrderConfirmation) error
}

// OverlayCloser closes the cart drawer and checkout dialog after a
// successful submission.
type OverlayCloser interface {
	CloseOverlays(sessionID string)
}

type session struct {
	form   domain.ShippingForm
	status domain.CheckoutStatus
}

// Manager runs one checkout state machine per session:
// IDLE -> SUBMITTING -> {SUCCEEDED, FAILED_SUBMIT}, with FAILED_VALIDATION as
// the pre-submission rejection. Every failure returns the session to IDLE with
// cart and form preserved.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*session

	carts         CartAccess
	placer        OrderPlacer
	notifier      notify.Notifier
	overlays      OverlayCloser
	submitTimeout time.Duration
}

type Option func(*Manager)

// WithSubmitTimeout overrides the order placement deadline.
func WithSubmitTimeout(timeout time.Duration) Option {
	return func(m *Manager) { m.submitTimeout = timeout }
}

func NewManager(carts CartAccess, placer OrderPlacer, notifier notify.Notifier, opts ...Option) *Manager {
	m := &Manager{
		sessions:      make(map[string]*session),
		carts:         carts,
		placer:        placer,
		notifier:      notifier,
		submitTimeout: DefaultSubmitTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BindOverlays wires the view controller in after construction; the two
// components reference each other.
func (m *Manager) BindOverlays(overlays OverlayCloser) {
	m.overlays = overlays
}

// Open starts (or restarts) a checkout session with an empty shipping form.
// The "cart has items" precondition belongs to the caller. Reopening while a
// submission is in flight is rejected.
func (m *Manager) Open(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok && s.status == domain.CheckoutStatusSubmitting {
		return ErrSubmitInFlight
	}
	m.sessions[sessionID] = &session{status: domain.CheckoutStatusIdle}
	return nil
}

// Close discards the in-progress form. Closing during submission is
// disallowed; the overlay close affordance is disabled in that window.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil
	}
	if s.status == domain.CheckoutStatusSubmitting {
		return ErrSubmitInFlight
	}
	delete(m.sessions, sessionID)
	return nil
}

// UpdateField mutates one shipping form attribute. Permitted while IDLE only;
// updates during submission are silently ignored.
func (m *Manager) UpdateField(sessionID, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotOpen
	}
	if s.status == domain.CheckoutStatusSubmitting {
		return nil
	}

	switch field {
	case "name":
		s.form.Name = value
	case "email":
		s.form.Email = value
	case "address":
		s.form.Address = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Form returns a copy of the current shipping form.
func (m *Manager) Form(sessionID string) (domain.ShippingForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return domain.ShippingForm{}, ErrNotOpen
	}
	return s.form, nil
}

// Status reports the session's checkout status; sessions without an open
// checkout are IDLE.
func (m *Manager) Status(sessionID string) domain.CheckoutStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		return s.status
	}
	return domain.CheckoutStatusIdle
}

// Busy reports whether a submission is in flight for the session.
func (m *Manager) Busy(sessionID string) bool {
	return m.Status(sessionID) == domain.CheckoutStatusSubmitting
}

// Submit validates the shipping form and places the order.
//
// The cart snapshot and total are captured from the cart store at submit
// time, strictly before any clear; the success notification reports that
// captured total. Exactly one submission may be in flight per session.
func (m *Manager) Submit(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		m.mu.Unlock()
		return nil, ErrNotOpen
	}
	if s.status == domain.CheckoutStatusSubmitting {
		m.mu.Unlock()
		return nil, ErrSubmitInFlight
	}

	form := s.form
	if !form.Complete() {
		s.status = domain.CheckoutStatusFailedValidation
		m.mu.Unlock()

		m.notifier.Notify("Missing Information", "Please fill in all fields.", notify.KindError)

		m.mu.Lock()
		s.status = domain.CheckoutStatusIdle
		m.mu.Unlock()
		return nil, ErrIncompleteForm
	}

	s.status = domain.CheckoutStatusSubmitting
	m.mu.Unlock()

	// Snapshot before placement: the confirmed total must never be read
	// after the cart is cleared.
	snapshot := domain.SnapshotOf(m.carts.Get(sessionID))
	order := &domain.OrderConfirmation{
		OrderID:   uuid.New().String(),
		SessionID: sessionID,
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Address:   strings.TrimSpace(form.Address),
		Snapshot:  snapshot,
		PlacedAt:  time.Now(),
	}

	placeCtx, cancel := context.WithTimeout(ctx, m.submitTimeout)
	defer cancel()
	if errPlace := m.placer.Place(placeCtx, order); errPlace != nil {
		log.Printf("order placement failed for session %v: %v", sessionID, errPlace)
		m.failSubmission(s)
		return nil, fmt.Errorf("failed to place order: %w", errPlace)
	}

	m.mu.Lock()
	if err := m.transition(s, domain.CheckoutStatusSucceeded); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	m.notifier.Notify(
		"Order Placed!",
		fmt.Sprintf("Thank you %s! Your order of $%.2f is on its way.", order.Name, snapshot.TotalAmount),
		notify.KindSuccess,
	)

	m.carts.Clear(sessionID)
	if m.overlays != nil {
		m.overlays.CloseOverlays(sessionID)
	}

	// Committed: drop the session, discarding the form and returning to IDLE.
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	return order, nil
}

// failSubmission walks the session through FAILED_SUBMIT back to IDLE. Cart
// and form stay untouched so the shopper can retry.
func (m *Manager) failSubmission(s *session) {
	m.mu.Lock()
	if err := m.transition(s, domain.CheckoutStatusFailedSubmit); err != nil {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	m.notifier.Notify("Order Failed", "We couldn't place your order. Please try again.", notify.KindError)

	m.mu.Lock()
	s.status = domain.CheckoutStatusIdle
	m.mu.Unlock()
}

// transition is the guarded status move; callers hold the lock.
func (m *Manager) transition(s *session, to domain.CheckoutStatus) error {
	if !domain.CanTransitionTo(s.status, to) {
		return IllegalTransitionError
	}
	s.status = to
	return nil
}
