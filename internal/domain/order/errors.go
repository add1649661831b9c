package order

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrNotOwned           = errors.New("order does not belong to this user")
	ErrEmptyOrder         = errors.New("cart is empty")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrCheckoutValidation = errors.New("checkout validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrReasonRequired     = errors.New("cancellation reason is required")
	ErrOrderNumberTaken   = errors.New("order number already exists")
)
