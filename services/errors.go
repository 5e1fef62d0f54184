package services

import "errors"

// Failure classes surfaced by the order and menu services. Handlers map these
// to HTTP codes; read paths degrade to empty results instead and never return
// them to the client.
var (
	// ErrUnauthenticated: no authenticated user at action time.
	ErrUnauthenticated = errors.New("you must sign in")

	// ErrMissingSelection: no order type chosen on submission.
	ErrMissingSelection = errors.New("select an option")

	// ErrOrderNotFound: the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrNotOwner: the order belongs to a different user.
	ErrNotOwner = errors.New("order belongs to another user")

	// ErrOrderLocked: the order's date is today or in the past; such orders
	// are immutable.
	ErrOrderLocked = errors.New("orders for today or past dates cannot be deleted")
)
