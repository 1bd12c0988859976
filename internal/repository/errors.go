// Package repository maps domain operations onto record-store gateway
// calls, one repository per entity. Writes are read-after-write: every
// mutation re-reads the affected row so callers always get the stored
// state back, and deletes return the row as it was before removal.
//
// The sentinel errors below let the service and handler layers
// distinguish failure cases without inspecting error strings.
package repository

import "errors"

// Not-found sentinels, one per entity so callers can report which lookup
// failed.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrPaymentNotFound  = errors.New("payment not found")
)

// ErrDuplicatePayment is returned when a second payment is created for a
// booking. The one-payment-per-booking rule is enforced here rather than
// left to caller discipline.
var ErrDuplicatePayment = errors.New("payment already exists for booking")
