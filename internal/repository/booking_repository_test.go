package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

func TestBookingRepoCreateSetsBookedStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(store.NewMemory())

	b := &model.Booking{CustomerID: 1, EventID: 2, Seats: 3}
	require.NoError(t, repo.Create(ctx, b))

	assert.NotZero(t, b.ID)
	assert.Equal(t, model.BookingStatusBooked, b.Status)
	assert.False(t, b.CreatedAt.IsZero())
	assert.False(t, b.UpdatedAt.IsZero())
}

func TestBookingRepoActiveSeats(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(store.NewMemory())

	first := &model.Booking{CustomerID: 1, EventID: 10, Seats: 4}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &model.Booking{CustomerID: 2, EventID: 10, Seats: 2}))
	require.NoError(t, repo.Create(ctx, &model.Booking{CustomerID: 3, EventID: 99, Seats: 8}))

	active, err := repo.ActiveSeats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 6, active)

	// cancelled bookings stop counting
	_, err = repo.UpdateStatus(ctx, first.ID, model.BookingStatusCancelled)
	require.NoError(t, err)

	active, err = repo.ActiveSeats(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, active)
}

func TestBookingRepoActiveSeatsEmptyEvent(t *testing.T) {
	repo := NewBookingRepo(store.NewMemory())
	active, err := repo.ActiveSeats(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, active)
}

func TestBookingRepoListByEventIncludesCancelled(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(store.NewMemory())

	b := &model.Booking{CustomerID: 1, EventID: 5, Seats: 1}
	require.NoError(t, repo.Create(ctx, b))
	_, err := repo.UpdateStatus(ctx, b.ID, model.BookingStatusCancelled)
	require.NoError(t, err)

	got, err := repo.ListByEvent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.BookingStatusCancelled, got[0].Status)
}

func TestBookingRepoUpdateStatusMissing(t *testing.T) {
	repo := NewBookingRepo(store.NewMemory())
	_, err := repo.UpdateStatus(context.Background(), 42, model.BookingStatusCancelled)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestBookingRepoDeleteReturnsPriorRow(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepo(store.NewMemory())

	b := &model.Booking{CustomerID: 1, EventID: 2, Seats: 3}
	require.NoError(t, repo.Create(ctx, b))

	prior, err := repo.Delete(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, prior.Seats)

	_, err = repo.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
