package model

import "time"

// Booking statuses. BOOKED to CANCELLED is a one-way transition.
const (
	BookingStatusBooked    = "BOOKED"
	BookingStatusCancelled = "CANCELLED"
)

// Booking reserves a number of seats on an event for a customer.
type Booking struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	EventID    int64     `json:"event_id"`
	Seats      int       `json:"seats"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
