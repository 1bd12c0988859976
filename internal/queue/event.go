// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records booking activity.
package queue

// Queue names. One durable queue per message type.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingCreated is published after a booking and its pending payment are
// persisted. It carries enough for downstream consumers to log or notify
// without querying the primary store.
type BookingCreated struct {
	BookingID    int64   `json:"booking_id"`
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name"`
	EventID      int64   `json:"event_id"`
	EventTitle   string  `json:"event_title"`
	Seats        int     `json:"seats"`
	Amount       float64 `json:"amount"`
	BookedAt     string  `json:"booked_at"`
}

// BookingCancelled is published after a booking is cancelled and its
// refund attempted.
type BookingCancelled struct {
	BookingID   int64  `json:"booking_id"`
	CustomerID  int64  `json:"customer_id"`
	EventID     int64  `json:"event_id"`
	Seats       int    `json:"seats"`
	CancelledAt string `json:"cancelled_at"`
}
