package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryInsertAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id1, err := s.Insert(ctx, "events", Row{"title": "GopherCon"})
	require.NoError(t, err)
	id2, err := s.Insert(ctx, "events", Row{"title": "FOSDEM"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	// ids are scoped per table
	other, err := s.Insert(ctx, "customers", Row{"name": "Ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestMemorySelectWhereEqualityFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Insert(ctx, "bookings", Row{"event_id": int64(1), "status": "BOOKED"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "bookings", Row{"event_id": int64(1), "status": "CANCELLED"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "bookings", Row{"event_id": int64(2), "status": "BOOKED"})
	require.NoError(t, err)

	rows, err := s.SelectWhere(ctx, "bookings", Filter{"event_id": int64(1), "status": "BOOKED"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0]["id"])
}

func TestMemorySelectWhereFilterTypesAreWidened(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Insert(ctx, "bookings", Row{"seats": 4})
	require.NoError(t, err)

	// a plain int filter must match the stored (widened) value
	rows, err := s.SelectWhere(ctx, "bookings", Filter{"seats": 4}, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = s.SelectWhere(ctx, "bookings", Filter{"seats": int64(4)}, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestMemorySelectWhereOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	for _, seats := range []int{3, 1, 2} {
		_, err := s.Insert(ctx, "bookings", Row{"seats": seats})
		require.NoError(t, err)
	}

	rows, err := s.SelectWhere(ctx, "bookings", nil, &Options{OrderBy: "seats DESC", Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(3), rows[0]["seats"])
	assert.Equal(t, int64(2), rows[1]["seats"])
}

func TestMemorySelectWhereReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Insert(ctx, "events", Row{"title": "GopherCon"})
	require.NoError(t, err)

	rows, err := s.SelectWhere(ctx, "events", nil, nil)
	require.NoError(t, err)
	rows[0]["title"] = "mutated"

	rows, err = s.SelectWhere(ctx, "events", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon", rows[0]["title"])
}

func TestMemoryUpdateAppliesToAllMatches(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Insert(ctx, "payments", Row{"booking_id": int64(7), "status": "PENDING"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "payments", Row{"booking_id": int64(8), "status": "PENDING"})
	require.NoError(t, err)

	err = s.Update(ctx, "payments", Row{"status": "PAID"}, Filter{"booking_id": int64(7)})
	require.NoError(t, err)

	rows, err := s.SelectWhere(ctx, "payments", Filter{"booking_id": int64(7)}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PAID", rows[0]["status"])

	rows, err = s.SelectWhere(ctx, "payments", Filter{"booking_id": int64(8)}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PENDING", rows[0]["status"])
}

func TestMemoryDeleteRemovesOnlyMatches(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Insert(ctx, "bookings", Row{"event_id": int64(1)})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "bookings", Row{"event_id": int64(2)})
	require.NoError(t, err)

	err = s.Delete(ctx, "bookings", Filter{"event_id": int64(1)})
	require.NoError(t, err)

	rows, err := s.SelectWhere(ctx, "bookings", nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0]["event_id"])
}

func TestMemoryDeleteMissingIsNoError(t *testing.T) {
	s := NewMemory()
	err := s.Delete(context.Background(), "bookings", Filter{"id": int64(99)})
	assert.NoError(t, err)
}

func TestMemoryOrdersTimeColumns(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 5)
	_, err := s.Insert(ctx, "events", Row{"date": newer})
	require.NoError(t, err)
	_, err = s.Insert(ctx, "events", Row{"date": older})
	require.NoError(t, err)

	rows, err := s.SelectWhere(ctx, "events", nil, &Options{OrderBy: "date"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, older, rows[0]["date"])
}
