// internal/checkout/state.go
package checkout

// State is the checkout sequencer's position in the flow
type State string

const (
	// StateLoadingCart is the initial state, before the cart has been fetched
	StateLoadingCart State = "LOADING_CART"
	// StateAddressEntry accepts address edits and a payment method choice
	StateAddressEntry State = "ADDRESS_ENTRY"
	// StateSubmitting has exactly one order or payment-session request in flight
	StateSubmitting State = "SUBMITTING"
	// StateEmptyCart is terminal: the cart had no line items, no order request
	// may be issued
	StateEmptyCart State = "EMPTY_CART"
	// StateRedirected is terminal: the submission succeeded and the shopper is
	// being sent to orders or to the hosted payment page
	StateRedirected State = "REDIRECTED"
	// StateFailed is terminal: checkout cannot proceed (no session)
	StateFailed State = "FAILED"
)

// IsTerminal reports whether no further transition is possible
func (s State) IsTerminal() bool {
	return s == StateEmptyCart || s == StateRedirected || s == StateFailed
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}
