package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/queue"
	"github.com/eventdesk/eventdesk/internal/repository"
)

// Publisher sends a domain message to the named queue. Satisfied by
// *queue.Publisher; a nil Publisher disables publishing.
type Publisher interface {
	Publish(ctx context.Context, queueName string, payload any) error
}

// BookingService runs the booking and cancellation workflows. These are
// the only operations that span three entities against a store with no
// transactions, so all multi-step consistency lives here: a per-event
// lock serializes capacity checks, and a compensating delete covers the
// booking-without-payment window.
type BookingService struct {
	bookings  *repository.BookingRepo
	events    *repository.EventRepo
	customers *repository.CustomerRepo
	payments  *PaymentService
	publisher Publisher
	locks     *eventLocks
}

// NewBookingService constructs a BookingService. publisher may be nil to
// disable queue messages.
func NewBookingService(
	bookings *repository.BookingRepo,
	events *repository.EventRepo,
	customers *repository.CustomerRepo,
	payments *PaymentService,
	publisher Publisher,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		events:    events,
		customers: customers,
		payments:  payments,
		publisher: publisher,
		locks:     newEventLocks(),
	}
}

// Book reserves seats on an event for a customer and attaches a PENDING
// payment priced at seats times the event price read during this call.
//
// The remaining capacity is derived from BOOKED rows, so the only writes
// are the booking insert and the payment insert. If the payment insert
// fails the booking row is deleted again; the caller never sees a
// half-booked state.
func (s *BookingService) Book(ctx context.Context, customerID, eventID int64, seats int) (*model.Booking, error) {
	if seats <= 0 {
		return nil, validationf("seats must be a positive integer")
	}

	unlock := s.locks.lock(eventID)
	defer unlock()

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	active, err := s.bookings.ActiveSeats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("sum active seats: %w", err)
	}
	if seats > event.Capacity-active {
		return nil, ErrCapacityExceeded
	}

	booking := &model.Booking{CustomerID: customerID, EventID: eventID, Seats: seats}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	amount := float64(seats) * event.Price
	if _, err := s.payments.CreatePending(ctx, booking.ID, amount); err != nil {
		if _, delErr := s.bookings.Delete(ctx, booking.ID); delErr != nil {
			log.Printf("booking %d: compensating delete failed: %v", booking.ID, delErr)
		}
		return nil, fmt.Errorf("create pending payment: %w", err)
	}

	s.publish(ctx, queue.BookingCreatedQueue, queue.BookingCreated{
		BookingID:    booking.ID,
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		EventID:      event.ID,
		EventTitle:   event.Title,
		Seats:        seats,
		Amount:       amount,
		BookedAt:     booking.CreatedAt.Format(time.RFC3339),
	})
	return booking, nil
}

// Cancel sets the booking to CANCELLED and attempts to refund its
// payment. A refund failure is demoted to a warning: a customer must
// always be able to cancel, whatever state the payment side is in.
// Cancelling an already-cancelled booking re-runs the refund logic; the
// second refund fails AlreadyRefunded and lands in the same warning path.
func (s *BookingService) Cancel(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(booking.EventID)
	defer unlock()

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, model.BookingStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if _, err := s.payments.Refund(ctx, bookingID); err != nil {
		log.Printf("booking %d: payment refund warning: %v", bookingID, err)
	}

	// No capacity write: the CANCELLED status above already released the
	// seats, since remaining capacity is derived from BOOKED rows.

	s.publish(ctx, queue.BookingCancelledQueue, queue.BookingCancelled{
		BookingID:   updated.ID,
		CustomerID:  updated.CustomerID,
		EventID:     updated.EventID,
		Seats:       updated.Seats,
		CancelledAt: updated.UpdatedAt.Format(time.RFC3339),
	})
	return updated, nil
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, bookingID int64) (*model.Booking, error) {
	return s.bookings.GetByID(ctx, bookingID)
}

// List returns up to limit bookings.
func (s *BookingService) List(ctx context.Context, limit int) ([]model.Booking, error) {
	return s.bookings.List(ctx, limit)
}

// ListByCustomer returns all bookings made by the customer.
func (s *BookingService) ListByCustomer(ctx context.Context, customerID int64) ([]model.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

func (s *BookingService) publish(ctx context.Context, queueName string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, queueName, payload); err != nil {
		log.Printf("publish %s: %v", queueName, err)
	}
}
