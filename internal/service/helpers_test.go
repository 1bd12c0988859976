package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/repository"
	"github.com/eventdesk/eventdesk/internal/store"
)

// env wires every service over a fresh in-memory store.
type env struct {
	store     *store.Memory
	customers *CustomerService
	events    *EventService
	bookings  *BookingService
	payments  *PaymentService
	reports   *ReportingService

	customerRepo *repository.CustomerRepo
	eventRepo    *repository.EventRepo
	bookingRepo  *repository.BookingRepo
	paymentRepo  *repository.PaymentRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mem := store.NewMemory()
	customerRepo := repository.NewCustomerRepo(mem)
	eventRepo := repository.NewEventRepo(mem)
	bookingRepo := repository.NewBookingRepo(mem)
	paymentRepo := repository.NewPaymentRepo(mem)
	payments := NewPaymentService(paymentRepo)
	return &env{
		store:        mem,
		customers:    NewCustomerService(customerRepo),
		events:       NewEventService(eventRepo, bookingRepo, paymentRepo),
		bookings:     NewBookingService(bookingRepo, eventRepo, customerRepo, payments, nil),
		payments:     payments,
		reports:      NewReportingService(bookingRepo, eventRepo, customerRepo),
		customerRepo: customerRepo,
		eventRepo:    eventRepo,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
	}
}

func (e *env) seedCustomer(t *testing.T, name, email string) *model.Customer {
	t.Helper()
	c, err := e.customers.Create(context.Background(), CreateCustomerInput{
		Name:  name,
		Email: email,
		Phone: "555-0101",
	})
	require.NoError(t, err)
	return c
}

func (e *env) seedEvent(t *testing.T, title string, capacity int, price float64) *model.Event {
	t.Helper()
	ev, err := e.events.Create(context.Background(), CreateEventInput{
		Title:    title,
		Date:     time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		Location: "Main Hall",
		Capacity: capacity,
		Price:    price,
	})
	require.NoError(t, err)
	return ev
}
