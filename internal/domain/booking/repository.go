package booking

import (
	"context"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
)

// DayBlocks agrega os bloqueios de uma data.
type DayBlocks struct {
	DayBlocked   bool
	BlockedTimes []string
}

type Repository interface {
	// -------- Practice / configuration --------
	GetPractice(
		ctx context.Context,
	) (*models.Practice, error)

	GetBusinessHours(
		ctx context.Context,
	) (*models.BusinessHours, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		client *models.Client,
	) (*models.Client, error)

	// -------- Availability reads --------
	ListBookedTimes(
		ctx context.Context,
		date string,
	) ([]string, error)

	GetBlocks(
		ctx context.Context,
		date string,
	) (DayBlocks, error)

	// -------- Booking (create) --------
	// Devolve erro de negócio slot_taken quando o índice único de
	// (booking_date, booking_time) rejeita a escrita.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingByID(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	GetBookingForClient(
		ctx context.Context,
		bookingID uint,
		phoneHash string,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listings --------
	ListBookingsForDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Booking, error)

	ListBookingsForClient(
		ctx context.Context,
		phoneHash string,
	) ([]models.Booking, error)
}
