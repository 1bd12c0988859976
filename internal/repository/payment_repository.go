package repository

import (
	"context"
	"errors"
	"time"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

const paymentsTable = "payments"

// PaymentRepo persists payments through the record-store gateway. A
// booking has at most one payment; Create enforces that rule (backed by
// a unique index on booking_id in the MySQL schema).
type PaymentRepo struct {
	store store.Store
}

// NewPaymentRepo returns a PaymentRepo bound to the given gateway.
func NewPaymentRepo(s store.Store) *PaymentRepo { return &PaymentRepo{store: s} }

func paymentFromRow(r store.Row) *model.Payment {
	return &model.Payment{
		ID:        rowInt64(r, "id"),
		BookingID: rowInt64(r, "booking_id"),
		Amount:    rowFloat(r, "amount"),
		Method:    rowStringPtr(r, "method"),
		Status:    rowString(r, "status"),
		CreatedAt: rowTime(r, "created_at"),
		UpdatedAt: rowTime(r, "updated_at"),
	}
}

// Create inserts a PENDING payment for the booking and re-reads the
// stored row into p. Returns ErrDuplicatePayment when the booking
// already has one.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if _, err := r.GetByBooking(ctx, p.BookingID); err == nil {
		return ErrDuplicatePayment
	} else if !errors.Is(err, ErrPaymentNotFound) {
		return err
	}
	now := time.Now().UTC()
	row := store.Row{
		"booking_id": p.BookingID,
		"amount":     p.Amount,
		"status":     model.PaymentStatusPending,
		"created_at": now,
		"updated_at": now,
	}
	if p.Method != nil {
		row["method"] = *p.Method
	} else {
		row["method"] = nil
	}
	if _, err := r.store.Insert(ctx, paymentsTable, row); err != nil {
		return err
	}
	fresh, err := r.GetByBooking(ctx, p.BookingID)
	if err != nil {
		return err
	}
	*p = *fresh
	return nil
}

// GetByBooking returns the booking's payment or ErrPaymentNotFound.
func (r *PaymentRepo) GetByBooking(ctx context.Context, bookingID int64) (*model.Payment, error) {
	rows, err := r.store.SelectWhere(ctx, paymentsTable, store.Filter{"booking_id": bookingID}, &store.Options{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrPaymentNotFound
	}
	return paymentFromRow(rows[0]), nil
}

// List returns up to limit payments ordered by id.
func (r *PaymentRepo) List(ctx context.Context, limit int) ([]model.Payment, error) {
	rows, err := r.store.SelectWhere(ctx, paymentsTable, nil, &store.Options{OrderBy: "id", Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]model.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, *paymentFromRow(row))
	}
	return out, nil
}

// MarkPaid transitions the booking's payment to PAID, recording the
// method, and returns the re-read row.
func (r *PaymentRepo) MarkPaid(ctx context.Context, bookingID int64, method string) (*model.Payment, error) {
	fields := store.Row{
		"status":     model.PaymentStatusPaid,
		"method":     method,
		"updated_at": time.Now().UTC(),
	}
	if err := r.store.Update(ctx, paymentsTable, fields, store.Filter{"booking_id": bookingID}); err != nil {
		return nil, err
	}
	return r.GetByBooking(ctx, bookingID)
}

// MarkRefunded transitions the booking's payment to REFUNDED and returns
// the re-read row.
func (r *PaymentRepo) MarkRefunded(ctx context.Context, bookingID int64) (*model.Payment, error) {
	fields := store.Row{
		"status":     model.PaymentStatusRefunded,
		"updated_at": time.Now().UTC(),
	}
	if err := r.store.Update(ctx, paymentsTable, fields, store.Filter{"booking_id": bookingID}); err != nil {
		return nil, err
	}
	return r.GetByBooking(ctx, bookingID)
}

// DeleteByBooking removes the booking's payment row if one exists.
// Deleting a payment that never existed is not an error.
func (r *PaymentRepo) DeleteByBooking(ctx context.Context, bookingID int64) error {
	return r.store.Delete(ctx, paymentsTable, store.Filter{"booking_id": bookingID})
}
