package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// TelegramNotifier envia avisos via bot do Telegram para o chat do
// administrador e, quando houver, para o chat do cliente. Tudo em
// goroutine própria: falha de envio é logada e esquecida.
type TelegramNotifier struct {
	bot         *bot.Bot
	adminChatID int64
	logger      *zap.Logger
}

func NewTelegramNotifier(
	token string,
	adminChatID int64,
	logger *zap.Logger,
) (*TelegramNotifier, error) {

	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:         b,
		adminChatID: adminChatID,
		logger:      logger,
	}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, event Event, p Payload) {
	go n.send(event, p)
}

// ScheduleReminder agenda um lembrete em memória. A perda do lembrete
// em restart do processo é aceitável.
func (n *TelegramNotifier) ScheduleReminder(delay time.Duration, p Payload) {
	if delay <= 0 {
		return
	}

	time.AfterFunc(delay, func() {
		n.send(EventBookingReminder, p)
	})
}

func (n *TelegramNotifier) send(event Event, p Payload) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	text := n.message(event, p)

	chats := []int64{}
	if n.adminChatID != 0 {
		chats = append(chats, n.adminChatID)
	}
	if p.ChatID != 0 && event != EventBookingCreated {
		chats = append(chats, p.ChatID)
	}

	for _, chatID := range chats {
		_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   text,
		})
		if err != nil {
			n.logger.Warn("telegram notify failed",
				zap.String("event", string(event)),
				zap.Uint("booking_id", p.BookingID),
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
	}
}

func (n *TelegramNotifier) message(event Event, p Payload) string {
	when := fmt.Sprintf("%s às %s", p.Date, p.Time)

	switch event {
	case EventBookingCreated:
		return fmt.Sprintf("Nova reserva #%d — %s, %s (aguardando pagamento).", p.BookingID, p.ClientName, when)
	case EventBookingConfirmed:
		return fmt.Sprintf("Reserva #%d confirmada — %s, %s.", p.BookingID, p.ClientName, when)
	case EventBookingCancelled:
		return fmt.Sprintf("Reserva #%d cancelada — %s, %s.", p.BookingID, p.ClientName, when)
	case EventBookingReminder:
		return fmt.Sprintf("Lembrete: sessão de %s em %s.", p.ClientName, when)
	}

	return fmt.Sprintf("Reserva #%d — %s, %s.", p.BookingID, p.ClientName, when)
}

var _ Notifier = (*TelegramNotifier)(nil)
