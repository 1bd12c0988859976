package model

import "time"

// Event is a bookable event created by an organizer.
//
// Capacity is the TOTAL number of seats and never changes after creation.
// Remaining availability is derived on read from the seats of BOOKED
// bookings, so booking and cancelling never write to the event row.
type Event struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}
