package booking

import "errors"

var (
	ErrNoActiveSession    = errors.New("no active booking session")
	ErrValidationFailed   = errors.New("guest roster validation failed")
	ErrPersistenceFailed  = errors.New("failed to persist booking")
	ErrInvalidPackageType = errors.New("invalid package type")
	ErrInvalidGuestField  = errors.New("invalid guest field")
	ErrBookingNotFound    = errors.New("booking not found")
)

// InvalidBookingError carries the field-to-rule map from struct validation
// of the booking payload, so the client can highlight individual fields.
type InvalidBookingError struct {
	Fields map[string]string
}

func (e *InvalidBookingError) Error() string { return "booking payload failed validation" }

func (e *InvalidBookingError) Unwrap() error { return ErrValidationFailed }
