package repository

import (
	"context"
	"time"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

const eventsTable = "events"

// EventRepo persists events through the record-store gateway. The
// capacity column holds the immutable total; nothing here ever mutates
// it on behalf of a booking.
type EventRepo struct {
	store store.Store
}

// NewEventRepo returns an EventRepo bound to the given gateway.
func NewEventRepo(s store.Store) *EventRepo { return &EventRepo{store: s} }

func eventFromRow(r store.Row) *model.Event {
	return &model.Event{
		ID:        rowInt64(r, "id"),
		Title:     rowString(r, "title"),
		Date:      rowTime(r, "date"),
		Location:  rowString(r, "location"),
		Capacity:  rowInt(r, "capacity"),
		Price:     rowFloat(r, "price"),
		CreatedAt: rowTime(r, "created_at"),
	}
}

// Create inserts the event and re-reads the stored row into e.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	id, err := r.store.Insert(ctx, eventsTable, store.Row{
		"title":      e.Title,
		"date":       e.Date,
		"location":   e.Location,
		"capacity":   e.Capacity,
		"price":      e.Price,
		"created_at": time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	fresh, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	*e = *fresh
	return nil
}

// GetByID returns a single event or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	rows, err := r.store.SelectWhere(ctx, eventsTable, store.Filter{"id": id}, &store.Options{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEventNotFound
	}
	return eventFromRow(rows[0]), nil
}

// List returns up to limit events ordered by id.
func (r *EventRepo) List(ctx context.Context, limit int) ([]model.Event, error) {
	rows, err := r.store.SelectWhere(ctx, eventsTable, nil, &store.Options{OrderBy: "id", Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, *eventFromRow(row))
	}
	return out, nil
}

// Search lists events matching the given equality filters. Nil arguments
// are skipped; the gateway supports equality predicates only.
func (r *EventRepo) Search(ctx context.Context, title, location *string, date *time.Time) ([]model.Event, error) {
	filter := store.Filter{}
	if title != nil {
		filter["title"] = *title
	}
	if location != nil {
		filter["location"] = *location
	}
	if date != nil {
		filter["date"] = *date
	}
	rows, err := r.store.SelectWhere(ctx, eventsTable, filter, &store.Options{OrderBy: "id"})
	if err != nil {
		return nil, err
	}
	out := make([]model.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, *eventFromRow(row))
	}
	return out, nil
}

// Update applies the given column values and returns the re-read row.
func (r *EventRepo) Update(ctx context.Context, id int64, fields store.Row) (*model.Event, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := r.store.Update(ctx, eventsTable, fields, store.Filter{"id": id}); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the event row only. Resolving dependent bookings and
// payments first is the event service's job.
func (r *EventRepo) Delete(ctx context.Context, id int64) (*model.Event, error) {
	prior, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Delete(ctx, eventsTable, store.Filter{"id": id}); err != nil {
		return nil, err
	}
	return prior, nil
}
