package booking

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/models"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/notify"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

func businessCode(err error) string {
	code, _ := httperr.BusinessCode(err)
	return code
}

// ------------------------------------------------------
// fake repository (in-memory, com o índice único simulado)
// ------------------------------------------------------

type fakeRepo struct {
	mu sync.Mutex

	practice *models.Practice
	hours    *models.BusinessHours
	hoursErr error
	readsErr error

	services map[uint]*models.Service
	clients  []*models.Client
	bookings []*models.Booking

	dayBlocked   map[string]bool
	blockedTimes map[string][]string

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		practice: &models.Practice{
			ID:                     1,
			Name:                   "Espaço Mente Leve",
			Timezone:               timezone.DefaultTimezone,
			MinAdvanceMinutes:      60,
			MinCancelNoticeMinutes: 30,
			MaxDaysAhead:           30,
		},
		hours: &models.BusinessHours{
			ID:                 1,
			WorkStart:          "09:00",
			WorkEnd:            "18:00",
			SessionDurationMin: 60,
		},
		services:     map[uint]*models.Service{},
		dayBlocked:   map[string]bool{},
		blockedTimes: map[string][]string{},
	}
}

func (r *fakeRepo) GetPractice(ctx context.Context) (*models.Practice, error) {
	return r.practice, nil
}

func (r *fakeRepo) GetBusinessHours(ctx context.Context) (*models.BusinessHours, error) {
	if r.hoursErr != nil {
		return nil, r.hoursErr
	}
	if r.hours == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hours, nil
}

func (r *fakeRepo) GetService(ctx context.Context, serviceID uint) (*models.Service, error) {
	if s, ok := r.services[serviceID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, in *models.Client) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.PhoneHash == in.PhoneHash {
			return c, nil
		}
	}

	r.nextID++
	in.ID = r.nextID
	r.clients = append(r.clients, in)
	return in, nil
}

func (r *fakeRepo) ListBookedTimes(ctx context.Context, date string) ([]string, error) {
	if r.readsErr != nil {
		return nil, r.readsErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var times []string
	for _, b := range r.bookings {
		if b.BookingDate == date && b.Status != string(domain.StatusCancelled) {
			times = append(times, b.BookingTime)
		}
	}
	return times, nil
}

func (r *fakeRepo) GetBlocks(ctx context.Context, date string) (domain.DayBlocks, error) {
	if r.readsErr != nil {
		return domain.DayBlocks{}, r.readsErr
	}

	return domain.DayBlocks{
		DayBlocked:   r.dayBlocked[date],
		BlockedTimes: r.blockedTimes[date],
	}, nil
}

func (r *fakeRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// comportamento do índice parcial: no máximo uma reserva não
	// cancelada por (data, hora)
	for _, existing := range r.bookings {
		if existing.BookingDate == b.BookingDate &&
			existing.BookingTime == b.BookingTime &&
			existing.Status != string(domain.StatusCancelled) {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
	}

	r.nextID++
	b.ID = r.nextID
	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) GetBookingByID(ctx context.Context, bookingID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == bookingID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetBookingForClient(ctx context.Context, bookingID uint, phoneHash string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID != bookingID {
			continue
		}
		for _, c := range r.clients {
			if c.ID == b.ClientID && c.PhoneHash == phoneHash {
				return b, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.bookings {
		if existing.ID == b.ID {
			r.bookings[i] = b
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeRepo) ListBookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingDate == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsForPeriod(ctx context.Context, from, to string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.BookingDate >= from && b.BookingDate < to {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsForClient(ctx context.Context, phoneHash string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		for _, c := range r.clients {
			if c.ID == b.ClientID && c.PhoneHash == phoneHash {
				out = append(out, *b)
			}
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------
// stub notifier
// ------------------------------------------------------

type recordedEvent struct {
	event   notify.Event
	payload notify.Payload
}

type stubNotifier struct {
	mu        sync.Mutex
	events    []recordedEvent
	reminders []notify.Payload
}

func (n *stubNotifier) Notify(ctx context.Context, event notify.Event, p notify.Payload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{event: event, payload: p})
}

func (n *stubNotifier) ScheduleReminder(delay time.Duration, p notify.Payload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reminders = append(n.reminders, p)
}

func (n *stubNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

var _ notify.Notifier = (*stubNotifier)(nil)

// ------------------------------------------------------
// wiring helpers
// ------------------------------------------------------

type testEnv struct {
	repo     *fakeRepo
	notifier *stubNotifier

	availability *GetAvailability
	create       *CreateBooking
	cancel       *CancelBooking
	markPaid     *MarkPaid
	complete     *CompleteBooking
}

// newTestEnv monta os usecases com relógio fixo e sem cache/audit reais.
func newTestEnv(now time.Time) *testEnv {
	repo := newFakeRepo()
	notifier := &stubNotifier{}

	clock := func() time.Time { return now }

	// audit dispatcher e cache nulos: ambos são nil-safe e fora do
	// comportamento sob teste
	availability := NewGetAvailability(repo, nil)
	availability.now = clock

	create := NewCreateBooking(repo, availability, nil, notifier, nil)
	create.now = clock

	cancel := NewCancelBooking(repo, nil, notifier, nil)
	cancel.now = clock

	markPaid := NewMarkPaid(repo, nil, notifier)
	markPaid.now = clock

	complete := NewCompleteBooking(repo, nil)
	complete.now = clock

	return &testEnv{
		repo:         repo,
		notifier:     notifier,
		availability: availability,
		create:       create,
		cancel:       cancel,
		markPaid:     markPaid,
		complete:     complete,
	}
}

func fixedNow(dateStr, timeStr string) time.Time {
	loc := timezone.Location(timezone.DefaultTimezone)
	t, err := domain.SlotInstant(dateStr, timeStr, loc)
	if err != nil {
		panic(err)
	}
	return t
}
