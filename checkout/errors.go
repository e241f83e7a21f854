package checkout

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid checkout transition")
	ErrCartLocked        = errors.New("cart cannot change while checkout is in progress")
	ErrPaymentPending    = errors.New("a payment is already being processed")
	ErrSessionNotFound   = errors.New("checkout session not found")
)
