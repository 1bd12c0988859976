package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/repository"
	"github.com/eventdesk/eventdesk/internal/store"
)

// CreateEventInput is the payload for creating an event.
type CreateEventInput struct {
	Title    string
	Date     time.Time
	Location string
	Capacity int
	Price    float64
}

// UpdateEventInput carries optional field edits; nil means unchanged.
// Price edits never touch existing payments: amounts are snapshotted at
// booking time.
type UpdateEventInput struct {
	Title    *string
	Date     *time.Time
	Location *string
	Capacity *int
	Price    *float64
}

// EventService manages events, including the deletion workflow that must
// resolve dependent bookings and payments before the event row goes away.
type EventService struct {
	events   *repository.EventRepo
	bookings *repository.BookingRepo
	payments *repository.PaymentRepo
}

// NewEventService constructs an EventService.
func NewEventService(events *repository.EventRepo, bookings *repository.BookingRepo, payments *repository.PaymentRepo) *EventService {
	return &EventService{events: events, bookings: bookings, payments: payments}
}

// Create validates and inserts a new event.
func (s *EventService) Create(ctx context.Context, in CreateEventInput) (*model.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, validationf("title is required")
	}
	if in.Capacity <= 0 {
		return nil, validationf("capacity must be greater than 0")
	}
	if in.Price < 0 {
		return nil, validationf("price cannot be negative")
	}
	e := &model.Event{
		Title:    in.Title,
		Date:     in.Date,
		Location: in.Location,
		Capacity: in.Capacity,
		Price:    in.Price,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns an event by id.
func (s *EventService) Get(ctx context.Context, id int64) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// List returns up to limit events.
func (s *EventService) List(ctx context.Context, limit int) ([]model.Event, error) {
	return s.events.List(ctx, limit)
}

// Search lists events by exact title, location and/or date.
func (s *EventService) Search(ctx context.Context, title, location *string, date *time.Time) ([]model.Event, error) {
	return s.events.Search(ctx, title, location, date)
}

// Remaining returns the event's remaining capacity, derived as total
// capacity minus the seats of BOOKED bookings.
func (s *EventService) Remaining(ctx context.Context, id int64) (int, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	active, err := s.bookings.ActiveSeats(ctx, id)
	if err != nil {
		return 0, err
	}
	return event.Capacity - active, nil
}

// Update applies the provided edits.
func (s *EventService) Update(ctx context.Context, id int64, in UpdateEventInput) (*model.Event, error) {
	fields := store.Row{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, validationf("title cannot be blank")
		}
		fields["title"] = title
	}
	if in.Date != nil {
		fields["date"] = *in.Date
	}
	if in.Location != nil {
		fields["location"] = *in.Location
	}
	if in.Capacity != nil {
		if *in.Capacity <= 0 {
			return nil, validationf("capacity must be greater than 0")
		}
		active, err := s.bookings.ActiveSeats(ctx, id)
		if err != nil {
			return nil, err
		}
		if *in.Capacity < active {
			return nil, validationf("capacity cannot drop below %d already-booked seats", active)
		}
		fields["capacity"] = *in.Capacity
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, validationf("price cannot be negative")
		}
		fields["price"] = *in.Price
	}
	if len(fields) == 0 {
		return s.events.GetByID(ctx, id)
	}
	return s.events.Update(ctx, id, fields)
}

// Delete removes an event after auto-resolving everything that points at
// it: each booking's payment is refunded when PAID, the payment row is
// removed, then the booking row, and only then the event row itself.
func (s *EventService) Delete(ctx context.Context, id int64) (*model.Event, error) {
	if _, err := s.events.GetByID(ctx, id); err != nil {
		return nil, err
	}
	bookings, err := s.bookings.ListByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bookings for event %d: %w", id, err)
	}
	for _, b := range bookings {
		payment, err := s.payments.GetByBooking(ctx, b.ID)
		switch {
		case err == nil:
			if payment.Status == model.PaymentStatusPaid {
				if _, err := s.payments.MarkRefunded(ctx, b.ID); err != nil {
					return nil, fmt.Errorf("refund payment for booking %d: %w", b.ID, err)
				}
			}
			if err := s.payments.DeleteByBooking(ctx, b.ID); err != nil {
				return nil, fmt.Errorf("delete payment for booking %d: %w", b.ID, err)
			}
		case errors.Is(err, repository.ErrPaymentNotFound):
			// Nothing to resolve.
		default:
			return nil, err
		}
		if _, err := s.bookings.Delete(ctx, b.ID); err != nil {
			return nil, fmt.Errorf("delete booking %d: %w", b.ID, err)
		}
	}
	return s.events.Delete(ctx, id)
}
