package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventdesk/eventdesk/internal/model"
	"github.com/eventdesk/eventdesk/internal/store"
)

func TestPaymentRepoCreateStartsPending(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepo(store.NewMemory())

	p := &model.Payment{BookingID: 1, Amount: 300}
	require.NoError(t, repo.Create(ctx, p))

	assert.NotZero(t, p.ID)
	assert.Equal(t, model.PaymentStatusPending, p.Status)
	assert.Equal(t, 300.0, p.Amount)
	assert.Nil(t, p.Method)
}

func TestPaymentRepoRejectsSecondPaymentPerBooking(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepo(store.NewMemory())

	require.NoError(t, repo.Create(ctx, &model.Payment{BookingID: 1, Amount: 100}))

	err := repo.Create(ctx, &model.Payment{BookingID: 1, Amount: 200})
	assert.ErrorIs(t, err, ErrDuplicatePayment)

	// the original row is untouched
	p, err := repo.GetByBooking(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, p.Amount)
}

func TestPaymentRepoMarkPaidRecordsMethod(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepo(store.NewMemory())

	require.NoError(t, repo.Create(ctx, &model.Payment{BookingID: 1, Amount: 100}))

	p, err := repo.MarkPaid(ctx, 1, "UPI")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, p.Status)
	require.NotNil(t, p.Method)
	assert.Equal(t, "UPI", *p.Method)
}

func TestPaymentRepoMarkRefunded(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepo(store.NewMemory())

	require.NoError(t, repo.Create(ctx, &model.Payment{BookingID: 1, Amount: 100}))

	p, err := repo.MarkRefunded(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, p.Status)
}

func TestPaymentRepoDeleteByBookingMissingIsNoError(t *testing.T) {
	repo := NewPaymentRepo(store.NewMemory())
	assert.NoError(t, repo.DeleteByBooking(context.Background(), 42))
}

func TestPaymentRepoGetByBookingMissing(t *testing.T) {
	repo := NewPaymentRepo(store.NewMemory())
	_, err := repo.GetByBooking(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
