package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
)

func TestMarkPaidConfirmsBooking(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	adminID := uint(1)

	b, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	paid, err := env.markPaid.Execute(context.Background(), b.ID, &adminID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), paid.Status)
	require.NotNil(t, paid.PaidAt)

	last := env.notifier.events[env.notifier.count()-1]
	assert.Equal(t, notify.EventBookingConfirmed, last.event)
}

func TestMarkPaidTwiceFails(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	adminID := uint(1)

	b, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	_, err = env.markPaid.Execute(context.Background(), b.ID, &adminID)
	require.NoError(t, err)

	_, err = env.markPaid.Execute(context.Background(), b.ID, &adminID)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidState, businessCode(err))
}

func TestMarkPaidUnknownBooking(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	_, err := env.markPaid.Execute(context.Background(), 999, nil)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeBookingNotFound, businessCode(err))
}

func TestCompleteConfirmedBooking(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	adminID := uint(1)

	b := confirmedBooking(t, env)

	done, err := env.complete.Execute(context.Background(), b.ID, &adminID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), done.Status)
	require.NotNil(t, done.CompletedAt)
}

func TestCompletePendingFails(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	b, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	_, err = env.complete.Execute(context.Background(), b.ID, nil)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidState, businessCode(err))
}

func TestCompleteCancelledFails(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	b := confirmedBooking(t, env)

	_, err := env.cancel.Execute(context.Background(), b.ID, Actor{Admin: true})
	require.NoError(t, err)

	_, err = env.complete.Execute(context.Background(), b.ID, nil)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidState, businessCode(err))
}

func TestListBookingsByDate(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	list := NewListBookings(env.repo)

	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)
	_, err = env.create.Execute(context.Background(), validInput("2025-03-11", "10:00"))
	require.NoError(t, err)

	got, err := list.ByDate(context.Background(), "2025-03-10", "")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = list.ByDate(context.Background(), "10/03/2025", "")
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidDateTime, businessCode(err))
}

func TestListBookingsByDateStatusFilter(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	list := NewListBookings(env.repo)

	pending, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	confirmedIn := validInput("2025-03-10", "11:00")
	confirmedIn.InitialStatus = domain.StatusConfirmed
	_, err = env.create.Execute(context.Background(), confirmedIn)
	require.NoError(t, err)

	got, err := list.ByDate(context.Background(), "2025-03-10", string(domain.StatusPendingPayment))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pending.ID, got[0].ID)

	got, err = list.ByDate(context.Background(), "2025-03-10", string(domain.StatusCancelled))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = list.ByDate(context.Background(), "2025-03-10", "paid")
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidStatus, businessCode(err))
}

func TestListBookingsByMonth(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	list := NewListBookings(env.repo)

	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)
	_, err = env.create.Execute(context.Background(), validInput("2025-03-31", "10:00"))
	require.NoError(t, err)
	_, err = env.create.Execute(context.Background(), validInput("2025-04-01", "10:00"))
	require.NoError(t, err)

	got, err := list.ByMonth(context.Background(), 2025, 3)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = list.ByMonth(context.Background(), 2025, 13)
	require.Error(t, err)
}

func TestListBookingsByClientPhone(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	list := NewListBookings(env.repo)

	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	got, err := list.ByClientPhone(context.Background(), "+55 11 98765 4321")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = list.ByClientPhone(context.Background(), "11900000000")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = list.ByClientPhone(context.Background(), "123")
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidPhone, businessCode(err))
}
