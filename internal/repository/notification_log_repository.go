package repository

import (
	"context"

	"github.com/yukikurage/service-task-manager/internal/models"
	"gorm.io/gorm"
)

// GormNotificationLogRepository is a GORM implementation of NotificationLogRepository
type GormNotificationLogRepository struct {
	db *gorm.DB
}

// NewNotificationLogRepository creates a new NotificationLogRepository
func NewNotificationLogRepository(db *gorm.DB) NotificationLogRepository {
	return &GormNotificationLogRepository{db: db}
}

// Create inserts the given log rows in one statement
func (r *GormNotificationLogRepository) Create(ctx context.Context, logs ...models.NotificationLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&logs).Error
}

// ListByTask returns a task's notification history, newest first
func (r *GormNotificationLogRepository) ListByTask(ctx context.Context, taskID uint64) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
