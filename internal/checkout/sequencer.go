// internal/checkout/sequencer.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/your-org/storefront-gateway/internal/upstream"
)

// Backend is the slice of the upstream API the sequencer drives
type Backend interface {
	Cart(ctx context.Context, token string) (*upstream.Cart, error)
	PlaceCashOrder(ctx context.Context, token, cartID string, address upstream.ShippingAddress) error
	CreateCheckoutSession(ctx context.Context, token, cartID string, address upstream.ShippingAddress, callbackOrigin string) (*upstream.CheckoutSession, error)
}

// PaymentMethod selects one of the two mutually exclusive payment paths
type PaymentMethod string

const (
	// PaymentCash creates the order directly, paid on delivery
	PaymentCash PaymentMethod = "cash"
	// PaymentCard redirects to a hosted payment page
	PaymentCard PaymentMethod = "card"
)

var (
	// ErrNotSignedIn means checkout was begun without a credential
	ErrNotSignedIn = errors.New("checkout: sign in required")
	// ErrEmptyCart means the cart had no line items; no order request follows
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrSubmitInFlight means a submission is already running; the duplicate
	// is refused before any network request
	ErrSubmitInFlight = errors.New("checkout: submission already in progress")
	// ErrNotReady means Submit was called outside the interactive state
	ErrNotReady = errors.New("checkout: not accepting submissions")
)

// ValidationError reports a required address field left empty. No network
// request is issued for an invalid submission.
type ValidationError struct {
	Field string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: missing required field %q", e.Field)
}

// Outcome is where the shopper goes after a successful submission
type Outcome struct {
	Method     PaymentMethod `json:"method"`
	RedirectTo string        `json:"redirect_to"`
}

// Sequencer runs one checkout flow:
//
//	LoadingCart -> AddressEntry -> Submitting -> {Redirected, EmptyCart, Failed}
//
// A failed submission returns to AddressEntry with the entered address
// preserved; retry is manual. A busy flag makes Submit non-reentrant so two
// concurrent submissions issue exactly one request.
type Sequencer struct {
	backend        Backend
	token          string
	callbackOrigin string

	mu        sync.Mutex
	busy      bool
	state     State
	cart      *upstream.Cart
	address   upstream.ShippingAddress
	lastError string
}

// NewSequencer creates a sequencer for one checkout attempt
func NewSequencer(backend Backend, token, callbackOrigin string) *Sequencer {
	return &Sequencer{
		backend:        backend,
		token:          token,
		callbackOrigin: callbackOrigin,
		state:          StateLoadingCart,
	}
}

// State returns the current state
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Cart returns the cart loaded by Begin, or nil before it
func (s *Sequencer) Cart() *upstream.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Address returns the last submitted address; preserved across failures so
// the shopper never re-types it
func (s *Sequencer) Address() upstream.ShippingAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// LastError returns the message the view should display, empty when none
func (s *Sequencer) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Begin fetches the cart and moves to the interactive state. Without a
// credential checkout fails terminally; with an empty cart it terminates
// before any order request can ever be issued.
func (s *Sequencer) Begin(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateLoadingCart {
		s.mu.Unlock()
		return fmt.Errorf("checkout: Begin called in state %s", s.state)
	}
	token := s.token
	s.mu.Unlock()

	if token == "" {
		s.transition(StateFailed, "Please sign in to checkout")
		return ErrNotSignedIn
	}

	cart, err := s.backend.Cart(ctx, token)
	if err != nil {
		s.transition(StateFailed, upstreamMessage(err, "Failed to load cart"))
		return fmt.Errorf("checkout: load cart: %w", err)
	}

	if len(cart.Products) == 0 {
		s.transition(StateEmptyCart, "")
		return ErrEmptyCart
	}

	s.mu.Lock()
	s.cart = cart
	s.state = StateAddressEntry
	s.lastError = ""
	s.mu.Unlock()
	return nil
}

// Submit validates the address and issues exactly one request for the chosen
// payment path. All three address fields must be non-empty; the check runs
// only here, at submission time. On upstream failure the sequencer returns
// to AddressEntry with the address intact so the shopper can retry.
func (s *Sequencer) Submit(ctx context.Context, address upstream.ShippingAddress, method PaymentMethod) (*Outcome, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if s.state != StateAddressEntry {
		state := s.state
		s.mu.Unlock()
		return nil, fmt.Errorf("%w (state %s)", ErrNotReady, state)
	}

	// Keep whatever was typed, valid or not
	s.address = address

	if field := missingAddressField(address); field != "" {
		s.lastError = "Please fill all shipping details"
		s.mu.Unlock()
		return nil, &ValidationError{Field: field}
	}

	s.busy = true
	s.state = StateSubmitting
	s.lastError = ""
	cartID := s.cart.ID
	token := s.token
	s.mu.Unlock()

	outcome, err := s.dispatch(ctx, token, cartID, address, method)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		// Back to the interactive state; address stays, retry is manual
		s.state = StateAddressEntry
		s.lastError = upstreamMessage(err, submitFallback(method))
		return nil, err
	}

	s.state = StateRedirected
	return outcome, nil
}

func (s *Sequencer) dispatch(ctx context.Context, token, cartID string, address upstream.ShippingAddress, method PaymentMethod) (*Outcome, error) {
	switch method {
	case PaymentCash:
		if err := s.backend.PlaceCashOrder(ctx, token, cartID, address); err != nil {
			return nil, err
		}
		return &Outcome{Method: PaymentCash, RedirectTo: "/orders"}, nil

	case PaymentCard:
		session, err := s.backend.CreateCheckoutSession(ctx, token, cartID, address, s.callbackOrigin)
		if err != nil {
			return nil, err
		}
		return &Outcome{Method: PaymentCard, RedirectTo: session.URL}, nil

	default:
		return nil, fmt.Errorf("checkout: unknown payment method %q", method)
	}
}

func (s *Sequencer) transition(state State, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.lastError = message
}

func missingAddressField(address upstream.ShippingAddress) string {
	switch {
	case address.Details == "":
		return "details"
	case address.Phone == "":
		return "phone"
	case address.City == "":
		return "city"
	}
	return ""
}

func submitFallback(method PaymentMethod) string {
	if method == PaymentCard {
		return "Failed to create checkout session"
	}
	return "Failed to create order"
}

// upstreamMessage surfaces the upstream's own message when one exists
func upstreamMessage(err error, fallback string) string {
	if apiErr, ok := upstream.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
