package payment

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("payment not found")
	ErrBookingNotFound = errors.New("booking not found")
)
