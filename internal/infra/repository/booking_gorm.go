package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
)

const pgUniqueViolation = "23505"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Practice / configuration
// --------------------------------------------------

func (r *BookingGormRepository) GetPractice(
	ctx context.Context,
) (*models.Practice, error) {

	var practice models.Practice
	if err := r.db.WithContext(ctx).First(&practice).Error; err != nil {
		return nil, err
	}
	return &practice, nil
}

func (r *BookingGormRepository) GetBusinessHours(
	ctx context.Context,
) (*models.BusinessHours, error) {

	var hours models.BusinessHours
	if err := r.db.WithContext(ctx).First(&hours).Error; err != nil {
		return nil, err
	}
	return &hours, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", serviceID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	in *models.Client,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone_hash = ?", in.PhoneHash).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(in).Error; err != nil {
		return nil, err
	}

	return in, nil
}

// --------------------------------------------------
// Availability reads
// --------------------------------------------------

func (r *BookingGormRepository) ListBookedTimes(
	ctx context.Context,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"booking_date = ? AND status <> ?",
			date, string(domain.StatusCancelled),
		).
		Order("booking_time ASC").
		Pluck("booking_time", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

func (r *BookingGormRepository) GetBlocks(
	ctx context.Context,
	date string,
) (domain.DayBlocks, error) {

	var blocks []models.BlockedSlot
	if err := r.db.WithContext(ctx).
		Where("block_date = ?", date).
		Find(&blocks).Error; err != nil {
		return domain.DayBlocks{}, err
	}

	out := domain.DayBlocks{BlockedTimes: []string{}}
	for _, b := range blocks {
		if b.BlockTime == "" {
			out.DayBlocked = true
			continue
		}
		out.BlockedTimes = append(out.BlockedTimes, b.BlockTime)
	}

	return out, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		// corrida entre dois clientes pelo mesmo horário: o índice
		// parcial decide, e o perdedor recebe slot_taken
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		First(&b, bookingID).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) GetBookingForClient(
	ctx context.Context,
	bookingID uint,
	phoneHash string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Where("bookings.id = ? AND clients.phone_hash = ?", bookingID, phoneHash).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("booking_date = ?", date).
		Order("booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("booking_date >= ? AND booking_date < ?", from, to).
		Order("booking_date ASC, booking_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForClient(
	ctx context.Context,
	phoneHash string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Where("clients.phone_hash = ?", phoneHash).
		Order("booking_date DESC, booking_time DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
