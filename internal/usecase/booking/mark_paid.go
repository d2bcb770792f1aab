package booking

import (
	"context"
	"time"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/audit"
	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

type MarkPaid struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	now      func() time.Time
}

func NewMarkPaid(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	notifier notify.Notifier,
) *MarkPaid {
	return &MarkPaid{
		repo:     repo,
		audit:    auditDispatcher,
		notifier: notifier,
		now:      timezone.Now,
	}
}

// Execute registra o pagamento: pending_payment → confirmed, sem
// restrição de horário.
func (uc *MarkPaid) Execute(
	ctx context.Context,
	bookingID uint,
	actorUserID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	if err := domain.MarkPaid(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorUserID,
		Action:   "booking_paid",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notifier.Notify(ctx, notify.EventBookingConfirmed, notify.Payload{
		BookingID:  b.ID,
		Reference:  b.Reference,
		ClientName: b.Client.Name,
		Date:       b.BookingDate,
		Time:       b.BookingTime,
		ChatID:     b.ChatID,
	})

	return b, nil
}
