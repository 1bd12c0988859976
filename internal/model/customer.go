package model

import "time"

// Customer is a person who books events. Email is unique across all
// customers; City is optional.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      *string   `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
