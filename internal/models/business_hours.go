package models

import "time"

// Expediente (linha única). BreakDurationMin é informativo:
// o gerador de horários NÃO aplica intervalo entre sessões.
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	WorkStart string `gorm:"size:5" json:"work_start"` // HH:MM
	WorkEnd   string `gorm:"size:5" json:"work_end"`   // HH:MM

	SessionDurationMin int `gorm:"default:60" json:"session_duration_min"`
	BreakDurationMin   int `gorm:"default:0" json:"break_duration_min"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
