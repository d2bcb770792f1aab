package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
)

func validInput(date, hour string) CreateBookingInput {
	return CreateBookingInput{
		ClientName:    "Ana Souza",
		ClientPhone:   "+55 (11) 98765-4321",
		ClientEmail:   "ana@gmail.com",
		Date:          date,
		Time:          hour,
		InitialStatus: domain.StatusPendingPayment,
	}
}

func TestCreateBookingPublicFlow(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	b, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPendingPayment), b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "2025-03-10", b.BookingDate)
	assert.Equal(t, "10:00", b.BookingTime)
	assert.NotZero(t, b.ClientID)

	require.Equal(t, 1, env.notifier.count())
	assert.Equal(t, notify.EventBookingCreated, env.notifier.events[0].event)
	assert.Equal(t, "Ana Souza", env.notifier.events[0].payload.ClientName)
	assert.Len(t, env.notifier.reminders, 1)
}

func TestCreateBookingAdminConfirmed(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	adminID := uint(1)
	in := validInput("2025-03-10", "14:00")
	in.InitialStatus = domain.StatusConfirmed
	in.ActorUserID = &adminID

	b, err := env.create.Execute(context.Background(), in)
	require.NoError(t, err)

	// entra direto como confirmed, sem etapa de pagamento
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, notify.EventBookingConfirmed, env.notifier.events[0].event)

	slots, err := env.availability.ExecuteFresh(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.NotContains(t, slots, "14:00")
}

func TestCreateBookingPendingAlsoHoldsSlot(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	// reserva aguardando pagamento já segura o horário
	_, err = env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotUnavailable, businessCode(err))
}

func TestCreateBookingInvalidInitialStatus(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	in := validInput("2025-03-10", "10:00")
	in.InitialStatus = domain.StatusCompleted

	_, err := env.create.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidStatus, businessCode(err))
}

func TestCreateBookingTooSoon(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "09:30"))

	// 10:00 está a 30min: abaixo da antecedência mínima de 60
	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeTooSoon, businessCode(err))
}

func TestCreateBookingAdvanceBoundary(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "09:00"))

	// exatamente 60min de antecedência ainda passa
	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)
}

func TestCreateBookingTooFarAhead(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	// 30 dias à frente: último dia permitido é 2025-04-09
	_, err := env.create.Execute(context.Background(), validInput("2025-04-09", "10:00"))
	require.NoError(t, err)

	_, err = env.create.Execute(context.Background(), validInput("2025-04-10", "10:00"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeTooFarAhead, businessCode(err))
}

func TestCreateBookingOffGridTime(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	// 10:30 não é um horário da grade de 60min
	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:30"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotUnavailable, businessCode(err))
}

func TestCreateBookingDayBlocked(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	env.repo.dayBlocked["2025-03-10"] = true

	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotUnavailable, businessCode(err))
}

func TestCreateBookingInvalidPhone(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	in := validInput("2025-03-10", "10:00")
	in.ClientPhone = "123"

	_, err := env.create.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidPhone, businessCode(err))
}

func TestCreateBookingInvalidDateTime(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "25:99"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidDateTime, businessCode(err))
}

func TestCreateBookingServiceNotFound(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	missing := uint(42)
	in := validInput("2025-03-10", "10:00")
	in.ServiceID = &missing

	_, err := env.create.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeServiceNotFound, businessCode(err))
}

func TestCreateBookingServicePrice(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	env.repo.services[7] = &models.Service{ID: 7, Name: "Sessão individual", Price: 180}

	serviceID := uint(7)
	in := validInput("2025-03-10", "10:00")
	in.ServiceID = &serviceID

	b, err := env.create.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 180.0, b.Amount)
}

func TestCreateBookingReusesClientByPhone(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	first, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	second, err := env.create.Execute(context.Background(), validInput("2025-03-10", "11:00"))
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
	assert.Len(t, env.repo.clients, 1)
}

// racingRepo enfia uma reserva concorrente no mesmo horário depois da
// revalidação de disponibilidade e antes da gravação, reproduzindo a
// corrida que o índice parcial do banco decide.
type racingRepo struct {
	*fakeRepo
	date     string
	hour     string
	injected bool
}

func (r *racingRepo) GetOrCreateClient(ctx context.Context, in *models.Client) (*models.Client, error) {
	if !r.injected {
		r.injected = true

		competitor := &models.Booking{
			Reference:   "competitor",
			BookingDate: r.date,
			BookingTime: r.hour,
			Status:      string(domain.StatusConfirmed),
		}
		if err := r.fakeRepo.CreateBooking(ctx, competitor); err != nil {
			return nil, err
		}
	}

	return r.fakeRepo.GetOrCreateClient(ctx, in)
}

func TestCreateBookingRaceLoserGetsSlotTaken(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))
	env.create.repo = &racingRepo{
		fakeRepo: env.repo,
		date:     "2025-03-10",
		hour:     "10:00",
	}

	// a revalidação ainda vê o horário livre; o concorrente grava
	// primeiro e o perdedor recebe slot_taken do repositório
	_, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotTaken, businessCode(err))

	// exatamente uma reserva ativa ficou com o horário
	times, err := env.repo.ListBookedTimes(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)

	// o perdedor não dispara notificação nem lembrete
	assert.Zero(t, env.notifier.count())
	assert.Empty(t, env.notifier.reminders)
}

func TestCreateBookingSlotFreedAfterCancel(t *testing.T) {
	env := newTestEnv(fixedNow("2025-03-10", "08:00"))

	b, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)

	_, err = env.cancel.Execute(context.Background(), b.ID, Actor{Admin: true})
	require.NoError(t, err)

	slots, err := env.availability.ExecuteFresh(context.Background(), "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00")

	// o horário liberado aceita nova reserva
	again, err := env.create.Execute(context.Background(), validInput("2025-03-10", "10:00"))
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, again.ID)
}
