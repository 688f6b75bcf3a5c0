package repository

import (
	"context"

	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// FindWithRelations finds a task with customer, property, service, status and media loaded
	FindWithRelations(ctx context.Context, id uint64) (*models.Task, error)

	// CreateWithMedia inserts a task and its attachment URLs in one transaction
	CreateWithMedia(ctx context.Context, task *models.Task, mediaURLs []string) error

	// UpdateWithMedia saves task fields and appends attachment URLs in one transaction
	UpdateWithMedia(ctx context.Context, task *models.Task, mediaURLs []string) error

	// List retrieves tasks with filtering and pagination
	List(ctx context.Context, filter TaskFilter) ([]models.Task, int64, error)

	// Delete deletes a task and its media
	Delete(ctx context.Context, id uint64) error

	// CountByReference counts tasks whose column equals id (customer_id, property_id, ...)
	CountByReference(ctx context.Context, column string, id uint64) (int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	CustomerID *uint64
	PropertyID *uint64
	StatusID   *uint64
	Pagination utils.PaginationParams
}

// StatusRepository defines the interface for task status data access
type StatusRepository interface {
	Create(ctx context.Context, status *models.TaskStatus) error
	FindByID(ctx context.Context, id uint64) (*models.TaskStatus, error)

	// FindByNameCaseInsensitive finds a status whose name equals name ignoring case
	FindByNameCaseInsensitive(ctx context.Context, name string) (*models.TaskStatus, error)

	List(ctx context.Context) ([]models.TaskStatus, error)
	Update(ctx context.Context, status *models.TaskStatus) error
	Delete(ctx context.Context, id uint64) error
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Customer, error)
	List(ctx context.Context, search string, params utils.PaginationParams) ([]models.Customer, int64, error)
	Update(ctx context.Context, customer *models.Customer) error

	// Delete deletes a customer and their properties
	Delete(ctx context.Context, id uint64) error
}

// PropertyRepository defines the interface for property data access
type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id uint64) (*models.Property, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id uint64) error
}

// ServiceRepository defines the interface for service catalog data access
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	FindByID(ctx context.Context, id uint64) (*models.Service, error)
	List(ctx context.Context) ([]models.Service, error)
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id uint64) error
}

// NotificationLogRepository defines the interface for notification audit data access
type NotificationLogRepository interface {
	Create(ctx context.Context, logs ...models.NotificationLog) error
	ListByTask(ctx context.Context, taskID uint64) ([]models.NotificationLog, error)
}

// UserRepository holds the admin accounts that may sign in
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
