package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"social-post-bot/internal/model"
	"social-post-bot/pkg/apperr"
)

// EventRepository handles persistence for events.
type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create stores a new event for the owner. The creation timestamp is
// assigned by the store at insert time.
func (r *EventRepository) Create(ctx context.Context, ownerID int64, text string) (*model.Event, error) {
	event := model.Event{TelegramID: ownerID, Text: text}
	if err := r.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, apperr.StoreUnavailable("create event", err)
	}
	return &event, nil
}

// FindInRange returns the owner's events with created_at inside
// [start, end], ordered by creation time.
func (r *EventRepository) FindInRange(ctx context.Context, ownerID int64, start, end time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("telegram_id = ? AND created_at >= ? AND created_at <= ?", ownerID, start.UTC(), end.UTC()).
		Order("created_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, apperr.StoreUnavailable("find events", err)
	}
	return events, nil
}

// DeleteAllByOwner removes every event owned by ownerID and returns the
// number of rows deleted. Other owners' events are never touched.
func (r *EventRepository) DeleteAllByOwner(ctx context.Context, ownerID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("telegram_id = ?", ownerID).Delete(&model.Event{})
	if res.Error != nil {
		return 0, apperr.StoreUnavailable("delete events", res.Error)
	}
	return res.RowsAffected, nil
}
