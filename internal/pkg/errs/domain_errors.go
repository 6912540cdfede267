package errs

import "errors"

// Domain-specific sentinel errors shared across the usecase layers
var (
	// Inventory errors
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownSKU        = errors.New("unknown sku")
	ErrUnknownToken      = errors.New("unknown reservation token")
	ErrNonPositiveQty    = errors.New("quantity must be positive")

	// Order errors
	ErrInvalidTransition = errors.New("intent not valid in current order state")
	ErrTerminalOrder     = errors.New("order is in a terminal state")
	ErrEmptyCartCheckout = errors.New("cannot checkout an empty cart")
	ErrLineNotFound      = errors.New("cart line not found")

	// Session errors
	ErrUnknownSession = errors.New("unknown session")
	ErrNoActiveOrder  = errors.New("no active order for session")

	// Idempotency errors
	ErrIdempotencyKeyRequired = errors.New("idempotency key required")

	// Catalog errors
	ErrUnknownProduct     = errors.New("unknown product")
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")
)
