package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID *uint    `json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`
	Amount    float64  `json:"amount"`

	// A unicidade de (booking_date, booking_time) entre reservas não
	// canceladas é garantida por índice parcial criado em internal/db.
	BookingDate string `gorm:"size:10;index;not null" json:"booking_date"` // YYYY-MM-DD
	BookingTime string `gorm:"size:5;not null" json:"booking_time"`        // HH:MM

	Status string `gorm:"size:20;default:'pending_payment'" json:"status"`

	Notes  string `gorm:"size:255" json:"notes"`
	ChatID int64  `json:"chat_id"`

	PaidAt      *time.Time `json:"paid_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
