package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/repository"
)

// Walks the full booking lifecycle against a 10-seat event priced at 50:
// a 6-seat booking leaves 4 seats and a 300 PENDING payment, a 5-seat
// attempt bounces, and cancelling restores all 10 seats and refunds.
func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	booking, err := e.bookings.Book(ctx, customer.ID, event.ID, 6)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusBooked, booking.Status)

	remaining, err := e.events.Remaining(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)

	payment, err := e.payments.GetByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Equal(t, 300.0, payment.Amount)

	_, err = e.bookings.Book(ctx, customer.ID, event.ID, 5)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	cancelled, err := e.bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	remaining, err = e.events.Remaining(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)

	payment, err = e.payments.GetByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, payment.Status)
}

func TestBookValidation(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	t.Run("zero seats", func(t *testing.T) {
		_, err := e.bookings.Book(ctx, customer.ID, event.ID, 0)
		assert.ErrorIs(t, err, ErrValidation)
	})
	t.Run("negative seats", func(t *testing.T) {
		_, err := e.bookings.Book(ctx, customer.ID, event.ID, -2)
		assert.ErrorIs(t, err, ErrValidation)
	})
	t.Run("unknown customer", func(t *testing.T) {
		_, err := e.bookings.Book(ctx, 999, event.ID, 1)
		assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
	})
	t.Run("unknown event", func(t *testing.T) {
		_, err := e.bookings.Book(ctx, customer.ID, 999, 1)
		assert.ErrorIs(t, err, repository.ErrEventNotFound)
	})
}

func TestBookSeatsEqualToRemainingSucceeds(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	_, err := e.bookings.Book(ctx, customer.ID, event.ID, 10)
	require.NoError(t, err)

	remaining, err := e.events.Remaining(ctx, event.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	_, err = e.bookings.Book(ctx, customer.ID, event.ID, 1)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

// The payment amount is snapshotted at booking time; a later price edit
// must not touch it.
func TestPaymentAmountSurvivesPriceEdit(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	booking, err := e.bookings.Book(ctx, customer.ID, event.ID, 2)
	require.NoError(t, err)

	newPrice := 80.0
	_, err = e.events.Update(ctx, event.ID, UpdateEventInput{Price: &newPrice})
	require.NoError(t, err)

	payment, err := e.payments.GetByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, payment.Amount)
}

// When the payment insert fails, the booking row must be rolled back so
// no booking exists without a payment. A pre-existing payment row under
// the id the booking will receive forces exactly that failure.
func TestBookCompensatesWhenPaymentFails(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	require.NoError(t, e.paymentRepo.Create(ctx, &model.Payment{BookingID: 1, Amount: 1}))

	_, err := e.bookings.Book(ctx, customer.ID, event.ID, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicatePayment)

	bookings, err := e.bookings.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, bookings)

	remaining, err := e.events.Remaining(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, remaining)
}

func TestCancelMissingBooking(t *testing.T) {
	e := newEnv(t)
	_, err := e.bookings.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

// Cancelling twice re-runs the refund; the second refund fails inside
// the warning path and the call still succeeds.
func TestCancelTwiceStaysCancelled(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	booking, err := e.bookings.Book(ctx, customer.ID, event.ID, 3)
	require.NoError(t, err)

	_, err = e.bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	again, err := e.bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, again.Status)

	payment, err := e.payments.GetByBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, payment.Status)
}

// Hammers one event from many goroutines; the per-event lock must admit
// exactly capacity seats.
func TestConcurrentBookingNeverOversells(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	const attempts = 40
	var wg sync.WaitGroup
	var booked int64
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.bookings.Book(ctx, customer.ID, event.ID, 1); err == nil {
				atomic.AddInt64(&booked, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), booked)
	remaining, err := e.events.Remaining(ctx, event.ID)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

type capturingPublisher struct {
	mu       sync.Mutex
	messages []string
}

func (p *capturingPublisher) Publish(ctx context.Context, queueName string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, queueName)
	return nil
}

func TestBookAndCancelPublishMessages(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	customer := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 10, 50)

	pub := &capturingPublisher{}
	bookings := NewBookingService(e.bookingRepo, e.eventRepo, e.customerRepo, e.payments, pub)

	booking, err := bookings.Book(ctx, customer.ID, event.ID, 2)
	require.NoError(t, err)
	_, err = bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"booking.created", "booking.cancelled"}, pub.messages)
}
