package repository

import (
	"context"

	"gorm.io/gorm"

	"social-post-bot/internal/model"
	"social-post-bot/pkg/apperr"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertIfAbsent creates a user from the given defaults when no record
// exists for its TelegramID. An existing record is returned untouched,
// so repeated /start calls never rewrite the captured identity.
func (r *UserRepository) UpsertIfAbsent(ctx context.Context, defaults model.User) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", defaults.TelegramID).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		user = defaults
		if err := db.Create(&user).Error; err != nil {
			return nil, apperr.StoreUnavailable("create user", err)
		}
		return &user, nil
	default:
		return nil, apperr.StoreUnavailable("find user", err)
	}
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, err
		}
		return nil, apperr.StoreUnavailable("find user", err)
	}
	return &user, nil
}
