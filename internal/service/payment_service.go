package service

import (
	"context"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/repository"
)

// PaymentService manages the single payment attached to each booking.
// "Processing" is a status flip, not a gateway charge; method strings are
// constrained by the front ends, not validated here.
type PaymentService struct {
	payments *repository.PaymentRepo
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(payments *repository.PaymentRepo) *PaymentService {
	return &PaymentService{payments: payments}
}

// CreatePending inserts a PENDING payment for the booking. The repository
// rejects a second payment for the same booking.
func (s *PaymentService) CreatePending(ctx context.Context, bookingID int64, amount float64) (*model.Payment, error) {
	if amount < 0 {
		return nil, validationf("amount cannot be negative")
	}
	p := &model.Payment{BookingID: bookingID, Amount: amount}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Process marks the booking's payment PAID with the given method. Fails
// with ErrAlreadyPaid when the payment is already completed.
func (s *PaymentService) Process(ctx context.Context, bookingID int64, method string) (*model.Payment, error) {
	p, err := s.payments.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}
	return s.payments.MarkPaid(ctx, bookingID, method)
}

// Refund marks the booking's payment REFUNDED, whether it was PENDING or
// PAID. Fails with ErrAlreadyRefunded when it already is.
func (s *PaymentService) Refund(ctx context.Context, bookingID int64) (*model.Payment, error) {
	p, err := s.payments.GetByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if p.Status == model.PaymentStatusRefunded {
		return nil, ErrAlreadyRefunded
	}
	return s.payments.MarkRefunded(ctx, bookingID)
}

// GetByBooking returns the booking's payment.
func (s *PaymentService) GetByBooking(ctx context.Context, bookingID int64) (*model.Payment, error) {
	return s.payments.GetByBooking(ctx, bookingID)
}

// List returns up to limit payments.
func (s *PaymentService) List(ctx context.Context, limit int) ([]model.Payment, error) {
	return s.payments.List(ctx, limit)
}
