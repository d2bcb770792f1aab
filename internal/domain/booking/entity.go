package booking

import (
	"time"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel marca a reserva como cancelada. Cancelar uma reserva já
// cancelada devolve alreadyCancelled=true sem mutação (idempotente).
func Cancel(b *models.Booking, now time.Time) (alreadyCancelled bool, err error) {
	if Status(b.Status) == StatusCancelled {
		return true, nil
	}

	if err := CanCancel(Status(b.Status)); err != nil {
		return false, err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return false, nil
}

func MarkPaid(b *models.Booking, now time.Time) error {
	if err := CanMarkPaid(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.PaidAt = &now
	return nil
}

func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
