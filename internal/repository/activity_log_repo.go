package repository

import (
	"context"

	"planhub/internal/entity"

	"gorm.io/gorm"
)

type ActivityLogRepository interface {
	Log(ctx context.Context, log *entity.ActivityLog) error
}

type activityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Log(ctx context.Context, log *entity.ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}
