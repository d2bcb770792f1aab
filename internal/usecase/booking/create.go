package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/audit"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/cache"
	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

const reminderLead = time.Hour

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ClientName     string
	ClientPhone    string
	ClientEmail    string
	ClientTelegram string

	ServiceID *uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	ChatID int64

	// pending_payment no fluxo público; confirmed no agendamento
	// direto do admin
	InitialStatus domain.Status

	// admin autenticado, para auditoria (nil no fluxo público)
	ActorUserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo         domain.Repository
	availability *GetAvailability
	audit        *audit.Dispatcher
	notifier     notify.Notifier
	cache        *cache.Availability
	now          func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	availability *GetAvailability,
	auditDispatcher *audit.Dispatcher,
	notifier notify.Notifier,
	availCache *cache.Availability,
) *CreateBooking {
	return &CreateBooking{
		repo:         repo,
		availability: availability,
		audit:        auditDispatcher,
		notifier:     notifier,
		cache:        availCache,
		now:          timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if err := domain.CanCreate(in.InitialStatus); err != nil {
		return nil, err
	}

	practice, err := uc.repo.GetPractice(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(practice.Timezone)

	start, err := domain.SlotInstant(in.Date, in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
	}

	now := uc.now().In(loc)

	// janela máxima de agendamento
	limit := timezone.Midnight(now).AddDate(0, 0, practice.MaxDaysAhead)
	if timezone.Midnight(start).After(limit) {
		return nil, httperr.ErrBusiness(httperr.CodeTooFarAhead)
	}

	// antecedência mínima
	minAdvance := time.Duration(practice.MinAdvanceMinutes) * time.Minute
	if start.Sub(now) < minAdvance {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	// revalida a disponibilidade em tempo de escrita; o índice único do
	// banco continua sendo a autoridade final na corrida
	slots, err := uc.availability.ExecuteFresh(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, in.Time) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	phone, err := domain.NormalizePhone(in.ClientPhone)
	if err != nil {
		return nil, err
	}

	client, err := uc.repo.GetOrCreateClient(ctx, &models.Client{
		Name:      in.ClientName,
		Phone:     phone,
		PhoneHash: domain.HashPhone(phone),
		Email:     in.ClientEmail,
		Telegram:  in.ClientTelegram,
	})
	if err != nil {
		return nil, err
	}

	var amount float64
	if in.ServiceID != nil {
		service, err := uc.repo.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		amount = service.Price
	}

	b := &models.Booking{
		Reference:   uuid.NewString(),
		ClientID:    client.ID,
		ServiceID:   in.ServiceID,
		Amount:      amount,
		BookingDate: in.Date,
		BookingTime: in.Time,
		Status:      string(in.InitialStatus),
		Notes:       in.Notes,
		ChatID:      in.ChatID,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorUserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{
			"date": in.Date,
			"time": in.Time,
		},
	})

	// melhor-esforço: falha de notificação nunca desfaz a reserva
	event := notify.EventBookingCreated
	if in.InitialStatus == domain.StatusConfirmed {
		event = notify.EventBookingConfirmed
	}

	payload := notify.Payload{
		BookingID:  b.ID,
		Reference:  b.Reference,
		ClientName: client.Name,
		Date:       in.Date,
		Time:       in.Time,
		ChatID:     in.ChatID,
	}

	uc.notifier.Notify(ctx, event, payload)
	uc.notifier.ScheduleReminder(start.Sub(now)-reminderLead, payload)

	return b, nil
}

func containsSlot(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}
