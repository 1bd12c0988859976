package repository

import (
	"context"
	"time"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

const bookingsTable = "bookings"

// BookingRepo persists bookings through the record-store gateway.
type BookingRepo struct {
	store store.Store
}

// NewBookingRepo returns a BookingRepo bound to the given gateway.
func NewBookingRepo(s store.Store) *BookingRepo { return &BookingRepo{store: s} }

func bookingFromRow(r store.Row) *model.Booking {
	return &model.Booking{
		ID:         rowInt64(r, "id"),
		CustomerID: rowInt64(r, "customer_id"),
		EventID:    rowInt64(r, "event_id"),
		Seats:      rowInt(r, "seats"),
		Status:     rowString(r, "status"),
		CreatedAt:  rowTime(r, "created_at"),
		UpdatedAt:  rowTime(r, "updated_at"),
	}
}

// Create inserts a BOOKED booking and re-reads the stored row into b.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	now := time.Now().UTC()
	id, err := r.store.Insert(ctx, bookingsTable, store.Row{
		"customer_id": b.CustomerID,
		"event_id":    b.EventID,
		"seats":       b.Seats,
		"status":      model.BookingStatusBooked,
		"created_at":  now,
		"updated_at":  now,
	})
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*b = *fresh
	return nil
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	rows, err := r.store.SelectWhere(ctx, bookingsTable, store.Filter{"id": id}, &store.Options{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookingFromRow(rows[0]), nil
}

// List returns up to limit bookings ordered by id.
func (r *BookingRepo) List(ctx context.Context, limit int) ([]model.Booking, error) {
	rows, err := r.store.SelectWhere(ctx, bookingsTable, nil, &store.Options{OrderBy: "id", Limit: limit})
	if err != nil {
		return nil, err
	}
	return bookingsFromRows(rows), nil
}

// ListByEvent returns every booking referencing the event, any status.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID int64) ([]model.Booking, error) {
	rows, err := r.store.SelectWhere(ctx, bookingsTable, store.Filter{"event_id": eventID}, &store.Options{OrderBy: "id"})
	if err != nil {
		return nil, err
	}
	return bookingsFromRows(rows), nil
}

// ListByCustomer returns every booking made by the customer, any status.
func (r *BookingRepo) ListByCustomer(ctx context.Context, customerID int64) ([]model.Booking, error) {
	rows, err := r.store.SelectWhere(ctx, bookingsTable, store.Filter{"customer_id": customerID}, &store.Options{OrderBy: "id"})
	if err != nil {
		return nil, err
	}
	return bookingsFromRows(rows), nil
}

// ActiveSeats sums the seats of all BOOKED bookings for the event. The
// gateway has no aggregate operations, so the sum happens here.
func (r *BookingRepo) ActiveSeats(ctx context.Context, eventID int64) (int, error) {
	rows, err := r.store.SelectWhere(ctx, bookingsTable,
		store.Filter{"event_id": eventID, "status": model.BookingStatusBooked}, nil)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, row := range rows {
		total += rowInt(row, "seats")
	}
	return total, nil
}

// UpdateStatus sets the booking status and returns the re-read row.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status string) (*model.Booking, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	fields := store.Row{"status": status, "updated_at": time.Now().UTC()}
	if err := r.store.Update(ctx, bookingsTable, fields, store.Filter{"id": id}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the booking row and returns it as it was before
// removal, or ErrBookingNotFound.
func (r *BookingRepo) Delete(ctx context.Context, id int64) (*model.Booking, error) {
	prior, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Delete(ctx, bookingsTable, store.Filter{"id": id}); err != nil {
		return nil, err
	}
	return prior, nil
}

func bookingsFromRows(rows []store.Row) []model.Booking {
	out := make([]model.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, *bookingFromRow(row))
	}
	return out
}
