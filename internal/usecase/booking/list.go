package booking

import (
	"context"
	"fmt"
	"time"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// ByDate lista as reservas de uma data, com filtro opcional de status.
func (uc *ListBookings) ByDate(
	ctx context.Context,
	dateStr string,
	status string,
) ([]models.Booking, error) {

	if _, err := time.Parse(domain.DateLayout, dateStr); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
	}

	if status != "" && !domain.Status(status).Valid() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}

	bookings, err := uc.repo.ListBookingsForDate(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	if status == "" {
		return bookings, nil
	}

	filtered := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	year int,
	month int,
) ([]models.Booking, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
	}

	from := fmt.Sprintf("%04d-%02d-01", year, month)

	next := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, 0)
	to := next.Format(domain.DateLayout)

	return uc.repo.ListBookingsForPeriod(ctx, from, to)
}

func (uc *ListBookings) ByClientPhone(
	ctx context.Context,
	rawPhone string,
) ([]models.Booking, error) {

	phone, err := domain.NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}

	return uc.repo.ListBookingsForClient(ctx, domain.HashPhone(phone))
}
