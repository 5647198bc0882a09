package model

import "time"

// User stores the Telegram identity captured on first contact.
// Fields are written once and never updated afterwards.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	FirstName  string
	LastName   string
	Username   string
	IsBot      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
