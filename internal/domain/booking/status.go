package booking

import "github.com/EspacoMenteLeve/psy-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal indica estados sem transição de saída.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Validations
// ===============================

// CanCreate valida o status inicial de uma reserva: fluxo público entra
// como pending_payment; agendamento direto do admin entra como confirmed.
func CanCreate(initial Status) error {
	if initial != StatusPendingPayment && initial != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}
	return nil
}

// CanCancel define se uma reserva pode ser cancelada. Reserva já
// cancelada é tratada pelo chamador como no-op idempotente, antes
// desta checagem.
func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanMarkPaid define se o pagamento pode ser registrado
func CanMarkPaid(current Status) error {
	if current != StatusPendingPayment {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete define se um atendimento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
