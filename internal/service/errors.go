// Package service enforces validation and the cross-entity invariants of
// the booking workflow. Services return typed failures; front ends are
// responsible for presentation and translate them unmodified.
package service

import (
	"errors"
	"fmt"
)

// ErrValidation marks bad input shape (zero seats, negative price, blank
// required fields). Wrapped errors carry the detail; match with
// errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

// ErrCapacityExceeded is returned when a booking asks for more seats than
// the event has remaining.
var ErrCapacityExceeded = errors.New("not enough seats available")

// ErrAlreadyPaid is returned when processing a payment that is already PAID.
var ErrAlreadyPaid = errors.New("payment is already completed")

// ErrAlreadyRefunded is returned when refunding a payment that is already
// REFUNDED.
var ErrAlreadyRefunded = errors.New("payment is already refunded")

// ErrDuplicateEmail is returned when a customer signup or edit would reuse
// another customer's email address.
var ErrDuplicateEmail = errors.New("email already in use")

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
