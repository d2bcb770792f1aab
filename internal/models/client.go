package models

import "time"

// Cliente sem login; o telefone normalizado é a chave natural
// e o hash serve para consultas do portal.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Phone     string `gorm:"size:20;not null" json:"phone"`
	PhoneHash string `gorm:"size:64;index" json:"-"`

	Email    string `gorm:"size:100" json:"email"`
	Telegram string `gorm:"size:64" json:"telegram"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
