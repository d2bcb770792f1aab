package httperr

import "errors"

// Códigos de regra de negócio usados pelo núcleo de agendamento.
const (
	CodeSlotTaken        = "slot_taken"
	CodeSlotUnavailable  = "slot_unavailable"
	CodeTooSoon          = "too_soon"
	CodeTooFarAhead      = "too_far_ahead"
	CodeTooLateToCancel  = "too_late_to_cancel"
	CodeInvalidState     = "invalid_state"
	CodeInvalidPhone     = "invalid_phone"
	CodeBookingNotFound  = "booking_not_found"
	CodeServiceNotFound  = "service_not_found"
	CodeDayBlocked       = "day_blocked"
	CodeInvalidDateTime  = "invalid_date_or_time"
	CodeInvalidStatus    = "invalid_status"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode devolve o código quando err é erro de negócio.
func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
