package models

import "time"

// Consultório individual (linha única) — agenda de um único profissional
type Practice struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Timezone string `gorm:"size:50;default:'America/Sao_Paulo'" json:"timezone"`

	MinAdvanceMinutes      int `gorm:"default:60" json:"min_advance_minutes"`
	MinCancelNoticeMinutes int `gorm:"default:30" json:"min_cancel_notice_minutes"`
	MaxDaysAhead           int `gorm:"default:30" json:"max_days_ahead"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
