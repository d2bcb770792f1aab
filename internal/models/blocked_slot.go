package models

import "time"

// Bloqueio criado pelo administrador.
// BlockTime vazio = dia inteiro bloqueado.
type BlockedSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BlockDate string `gorm:"size:10;index;not null" json:"block_date"` // YYYY-MM-DD
	BlockTime string `gorm:"size:5" json:"block_time"`                 // HH:MM ou vazio
	Reason    string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
