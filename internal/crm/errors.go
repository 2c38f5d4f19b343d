package crm

import "errors"

var (
	// ErrMissingPhone is returned when a profile has no phone number key.
	ErrMissingPhone = errors.New("phone number is required")

	// ErrProfileNotFound is returned when no profile exists for a phone number.
	ErrProfileNotFound = errors.New("customer profile not found")
)
