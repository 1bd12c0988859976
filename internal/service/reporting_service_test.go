package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopSellingEventsSumsAcrossBookings(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ana := e.seedCustomer(t, "Ana", "ana@example.com")
	e1 := e.seedEvent(t, "GopherCon", 50, 10)
	e2 := e.seedEvent(t, "FOSDEM", 50, 10)

	// E1 sells 3+2, E2 sells 5: a tie at five seats each. E1 appeared
	// first in the booking list, so it wins the tie.
	for _, b := range []struct {
		eventID int64
		seats   int
	}{
		{e1.ID, 3},
		{e1.ID, 2},
		{e2.ID, 5},
	} {
		_, err := e.bookings.Book(ctx, ana.ID, b.eventID, b.seats)
		require.NoError(t, err)
	}

	top, err := e.reports.TopSellingEvents(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, e1.ID, top[0].EventID)
	assert.Equal(t, "GopherCon", top[0].Title)
	assert.Equal(t, 5, top[0].SeatsSold)
}

func TestTopSellingEventsCountsCancelled(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ana := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 50, 10)

	booking, err := e.bookings.Book(ctx, ana.ID, event.ID, 4)
	require.NoError(t, err)
	_, err = e.bookings.Cancel(ctx, booking.ID)
	require.NoError(t, err)

	top, err := e.reports.TopSellingEvents(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 4, top[0].SeatsSold)
}

func TestTotalRevenueLastMonthWindow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ana := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 50, 50)

	_, err := e.bookings.Book(ctx, ana.ID, event.ID, 2)
	require.NoError(t, err)

	// Revenue as of now includes the booking; pinned 31 days ahead the
	// booking falls outside the trailing window.
	total, err := e.reports.TotalRevenueLastMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, total)

	e.reports.now = func() time.Time { return time.Now().UTC().AddDate(0, 0, 31) }
	total, err = e.reports.TotalRevenueLastMonth(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTotalRevenueUsesCurrentPrice(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ana := e.seedCustomer(t, "Ana", "ana@example.com")
	event := e.seedEvent(t, "GopherCon", 50, 50)

	_, err := e.bookings.Book(ctx, ana.ID, event.ID, 2)
	require.NoError(t, err)

	newPrice := 75.0
	_, err = e.events.Update(ctx, event.ID, UpdateEventInput{Price: &newPrice})
	require.NoError(t, err)

	total, err := e.reports.TotalRevenueLastMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)
}

func TestBookingsPerCustomerAndRepeaters(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	ana := e.seedCustomer(t, "Ana", "ana@example.com")
	bo := e.seedCustomer(t, "Bo", "bo@example.com")
	cy := e.seedCustomer(t, "Cy", "cy@example.com")
	event := e.seedEvent(t, "GopherCon", 50, 10)

	book := func(customerID int64, times int) {
		for i := 0; i < times; i++ {
			_, err := e.bookings.Book(ctx, customerID, event.ID, 1)
			require.NoError(t, err)
		}
	}
	book(ana.ID, 3)
	book(bo.ID, 2)
	book(cy.ID, 1)

	all, err := e.reports.TotalBookingsPerCustomer(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, 3, all[0].Bookings)
	assert.Equal(t, 2, all[1].Bookings)
	assert.Equal(t, 1, all[2].Bookings)

	// strictly more than min: with the default of 2, only Ana qualifies
	repeaters, err := e.reports.CustomersWithMultipleBookings(ctx, 0)
	require.NoError(t, err)
	require.Len(t, repeaters, 1)
	assert.Equal(t, "Ana", repeaters[0].Name)

	repeaters, err = e.reports.CustomersWithMultipleBookings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, repeaters, 2)
}

func TestReportsOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	top, err := e.reports.TopSellingEvents(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, top)

	total, err := e.reports.TotalRevenueLastMonth(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	rows, err := e.reports.TotalBookingsPerCustomer(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
