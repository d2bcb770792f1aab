package validators

import "time"

// IsHourMinute valida horários no formato HH:MM (24h).
func IsHourMinute(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsISODate valida datas no formato YYYY-MM-DD.
func IsISODate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
