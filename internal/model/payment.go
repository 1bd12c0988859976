package model

import "time"

// Payment statuses.
const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPaid     = "PAID"
	PaymentStatusRefunded = "REFUNDED"
)

// Payment is the single payment record attached to a booking. Amount is
// seats times the event price at booking time and is never recomputed,
// even when the event price changes later. Method stays nil until the
// payment is processed.
type Payment struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Method    *string   `json:"method,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
