package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/service-task-manager/internal/database"
	"github.com/yukikurage/service-task-manager/internal/models"
	"gorm.io/gorm"
)

// taskRelations are preloaded whenever a task is returned to callers or composed into a notification
var taskRelations = []string{"Customer", "Property", "Service", "Status", "Media"}

// referenceColumns are the task columns CountByReference accepts
var referenceColumns = map[string]struct{}{
	"customer_id": {},
	"property_id": {},
	"service_id":  {},
	"status_id":   {},
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.WithContext(ctx)

	// Apply preloading if specified
	for _, p := range preload {
		if p == "Media" {
			query = query.Preload("Media", func(db *gorm.DB) *gorm.DB {
				return db.Order("id ASC")
			})
			continue
		}
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindWithRelations finds a task with every relation loaded
func (r *GormTaskRepository) FindWithRelations(ctx context.Context, id uint64) (*models.Task, error) {
	return r.FindByID(ctx, id, taskRelations...)
}

// CreateWithMedia creates a task and its media rows atomically
func (r *GormTaskRepository) CreateWithMedia(ctx context.Context, task *models.Task, mediaURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Property", "Service", "Status", "Media").Create(task).Error; err != nil {
			return err
		}
		return appendMedia(tx, task.ID, mediaURLs)
	})
}

// UpdateWithMedia saves a task and appends media rows atomically
func (r *GormTaskRepository) UpdateWithMedia(ctx context.Context, task *models.Task, mediaURLs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Property", "Service", "Status", "Media").Save(task).Error; err != nil {
			return err
		}
		return appendMedia(tx, task.ID, mediaURLs)
	})
}

func appendMedia(tx *gorm.DB, taskID uint64, urls []string) error {
	if len(urls) == 0 {
		return nil
	}

	media := make([]models.TaskMedia, len(urls))
	for i, url := range urls {
		media[i] = models.TaskMedia{
			URL:    url,
			TaskID: taskID,
		}
	}

	return tx.Create(&media).Error
}

// List retrieves tasks with filtering and pagination
func (r *GormTaskRepository) List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Scopes(
			database.WhereIDIf("tasks.customer_id", filter.CustomerID),
			database.WhereIDIf("tasks.property_id", filter.PropertyID),
			database.WhereIDIf("tasks.status_id", filter.StatusID),
		)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("tasks.created_at DESC, tasks.id DESC").
		Scopes(database.Paginate(filter.Pagination)).
		Preload("Customer").
		Preload("Property").
		Preload("Service").
		Preload("Status").
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Delete deletes a task and its media in a transaction
func (r *GormTaskRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskMedia{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountByReference counts tasks referencing the given row
func (r *GormTaskRepository) CountByReference(ctx context.Context, column string, id uint64) (int64, error) {
	if _, ok := referenceColumns[column]; !ok {
		return 0, fmt.Errorf("unsupported reference column %q", column)
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Task{}).
		Where(column+" = ?", id).
		Count(&count).Error

	return count, err
}
