package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/EspacoMenteLeve/psy-scheduler/internal/cache"
	domain "github.com/EspacoMenteLeve/psy-scheduler/internal/domain/booking"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"
	"github.com/EspacoMenteLeve/psy-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.Availability
	now   func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	availCache *cache.Availability,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: availCache,
		now:   timezone.Now,
	}
}

// Execute calcula os horários reserváveis da data, com cache curto.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	dateStr string,
) ([]string, error) {
	return uc.run(ctx, dateStr, true)
}

// ExecuteFresh ignora o cache; usado na revalidação em tempo de
// escrita, onde uma lista velha alargaria a janela de corrida.
func (uc *GetAvailability) ExecuteFresh(
	ctx context.Context,
	dateStr string,
) ([]string, error) {
	return uc.run(ctx, dateStr, false)
}

func (uc *GetAvailability) run(
	ctx context.Context,
	dateStr string,
	useCache bool,
) ([]string, error) {

	practice, err := uc.repo.GetPractice(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(practice.Timezone)

	date, err := time.ParseInLocation(domain.DateLayout, dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateTime)
	}

	// expediente ausente degrada para "sem horários hoje"; qualquer
	// outra falha de leitura sobe como erro para o chamador conseguir
	// distinguir agenda vazia de backend fora do ar
	hours, err := uc.repo.GetBusinessHours(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	if useCache {
		if slots, ok := uc.cache.Get(ctx, dateStr); ok {
			return slots, nil
		}
	}

	bookedTimes, err := uc.repo.ListBookedTimes(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.GetBlocks(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	slots := domain.ComputeAvailableSlots(
		date,
		domain.HoursConfig{
			WorkStart:          hours.WorkStart,
			WorkEnd:            hours.WorkEnd,
			SessionDurationMin: hours.SessionDurationMin,
		},
		bookedTimes,
		blocks.BlockedTimes,
		blocks.DayBlocked,
		uc.now().In(loc),
		time.Duration(practice.MinAdvanceMinutes)*time.Minute,
	)

	if useCache {
		uc.cache.Set(ctx, dateStr, slots)
	}

	return slots, nil
}
