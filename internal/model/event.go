package model

import "time"

// Event is a single user-submitted text snippet, the raw material for
// generated posts. Rows are immutable once created.
type Event struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"index"`
	Text       string
	CreatedAt  time.Time
}
