package booking

import (
	"context"
	"time"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/audit"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/cache"
	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

// Actor identifica quem pede o cancelamento: admin cancela qualquer
// reserva sem checar a janela de aviso; cliente só cancela as próprias
// e respeita o aviso mínimo para reservas confirmadas.
type Actor struct {
	Admin     bool
	UserID    *uint
	PhoneHash string
}

type CancelBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	cache    *cache.Availability
	now      func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier notify.Notifier,
	availCache *cache.Availability,
) *CancelBooking {
	return &CancelBooking{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		cache:    availCache,
		now:      timezone.Now,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actor Actor,
) (*models.Booking, error) {

	practice, err := uc.repo.GetPractice(ctx)
	if err != nil {
		return nil, err
	}

	var b *models.Booking
	if actor.Admin {
		b, err = uc.repo.GetBookingByID(ctx, bookingID)
	} else {
		b, err = uc.repo.GetBookingForClient(ctx, bookingID, actor.PhoneHash)
	}
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	loc := timezone.Location(practice.Timezone)
	now := uc.now().In(loc)

	// aviso mínimo só vale para cliente cancelando reserva confirmada;
	// pedido não pago cancela sem restrição
	if !actor.Admin && domain.Status(b.Status) == domain.StatusConfirmed {
		start, err := domain.SlotInstant(b.BookingDate, b.BookingTime, loc)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
		}

		notice := time.Duration(practice.MinCancelNoticeMinutes) * time.Minute

		// igual ao limite ainda passa (inclusive)
		if start.Sub(now) < notice {
			return nil, httperr.ErrBusiness(httperr.CodeTooLateToCancel)
		}
	}

	alreadyCancelled, err := domain.Cancel(b, now)
	if err != nil {
		return nil, err
	}
	if alreadyCancelled {
		// no-op idempotente
		return b, nil
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, b.BookingDate)

	uc.audit.Dispatch(audit.Event{
		UserID:   actor.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notifier.Notify(ctx, notify.EventBookingCancelled, notify.Payload{
		BookingID:  b.ID,
		Reference:  b.Reference,
		ClientName: b.Client.Name,
		Date:       b.BookingDate,
		Time:       b.BookingTime,
		ChatID:     b.ChatID,
	})

	return b, nil
}
