package cart

import "errors"

var (
	ErrDuplicateItem          = errors.New("item already in cart")
	ErrAuthenticationRequired = errors.New("authentication required for checkout")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidDiscount        = errors.New("discount code is invalid or expired")
	ErrPersistenceFailed      = errors.New("failed to persist cart")
)
