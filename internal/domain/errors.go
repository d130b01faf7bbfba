package domain

import "errors"

// Request-recoverable error kinds. Handlers match these with errors.Is and
// render a notice; none of them should take the process down.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrPricing       = errors.New("pricing unavailable")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrNoTable       = errors.New("no table bound to session")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrValidation    = errors.New("invalid input")
)
