package notify

import (
	"context"
	"time"
)

type Event string

const (
	EventBookingCreated   Event = "booking_created"
	EventBookingConfirmed Event = "booking_confirmed"
	EventBookingCancelled Event = "booking_cancelled"
	EventBookingReminder  Event = "booking_reminder"
)

type Payload struct {
	BookingID  uint
	Reference  string
	ClientName string
	Date       string
	Time       string

	// Chat do cliente, quando informado na reserva (0 = só admin)
	ChatID int64
}

// Notifier é melhor-esforço por contrato: nenhuma implementação pode
// devolver erro nem bloquear o fluxo de reserva.
type Notifier interface {
	Notify(ctx context.Context, event Event, p Payload)
	ScheduleReminder(delay time.Duration, p Payload)
}

// Noop é usado quando o canal de Telegram não está configurado.
type Noop struct{}

func (Noop) Notify(ctx context.Context, event Event, p Payload) {}
func (Noop) ScheduleReminder(delay time.Duration, p Payload)    {}

var _ Notifier = Noop{}
