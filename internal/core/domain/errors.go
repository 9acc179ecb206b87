package domain

import "errors"

var (
	ErrUnsupportedContext = errors.New("unsupported context")
	ErrListingNotFound    = errors.New("listing not found")
	ErrBrandNotFound      = errors.New("brand not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidOrderStatus = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("order status transition is not allowed")
	ErrTrackingRequired   = errors.New("tracking number is required to ship an order")
	ErrOrderConflict      = errors.New("order was modified concurrently")
	ErrTokenInvalid       = errors.New("invalid jwt token")
	ErrForbidden          = errors.New("forbidden")
)
