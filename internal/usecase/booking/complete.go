package booking

import (
	"context"
	"time"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/audit"
	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

type CompleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CompleteBooking {
	return &CompleteBooking{
		repo:  repo,
		audit: auditDispatcher,
		now:   timezone.Now,
	}
}

// Execute conclui um atendimento (transição manual do admin, para
// histórico e relatórios).
func (uc *CompleteBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actorUserID *uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeBookingNotFound)
	}

	if err := domain.Complete(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorUserID,
		Action:   "booking_completed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
