package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/service-task-manager/internal/models"
	"gorm.io/gorm"
)

// GormStatusRepository is a GORM implementation of StatusRepository
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &GormStatusRepository{db: db}
}

func (r *GormStatusRepository) Create(ctx context.Context, status *models.TaskStatus) error {
	return r.db.WithContext(ctx).Create(status).Error
}

func (r *GormStatusRepository) FindByID(ctx context.Context, id uint64) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindByNameCaseInsensitive matches the whole name, ignoring case
func (r *GormStatusRepository) FindByNameCaseInsensitive(ctx context.Context, name string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Order("id ASC").
		First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *GormStatusRepository) List(ctx context.Context) ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *GormStatusRepository) Update(ctx context.Context, status *models.TaskStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *GormStatusRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(r.db.WithContext(ctx), &models.TaskStatus{}, id)
}

// deleteByID deletes one row and reports gorm.ErrRecordNotFound when nothing matched
func deleteByID(db *gorm.DB, model interface{}, id uint64) error {
	result := db.Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
