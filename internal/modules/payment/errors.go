package payment

import "errors"

var (
	ErrNotConfigured    = errors.New("moyasar credentials are not configured")
	ErrEmptyCart        = errors.New("nothing to pay for")
	ErrAmountMismatch   = errors.New("amount mismatch")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNotPaid          = errors.New("payment is not paid")
	ErrPaymentNotFound  = errors.New("payment not found")
)
