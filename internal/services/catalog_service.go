package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/repository"
	"gorm.io/gorm"
)

// CatalogService manages the service catalog and the configurable task statuses.
type CatalogService struct {
	serviceRepo repository.ServiceRepository
	statusRepo  repository.StatusRepository
	taskRepo    repository.TaskRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	serviceRepo repository.ServiceRepository,
	statusRepo repository.StatusRepository,
	taskRepo repository.TaskRepository,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		statusRepo:  statusRepo,
		taskRepo:    taskRepo,
	}
}

// ServiceInput represents input for creating or replacing a service
type ServiceInput struct {
	Name        string
	Description string
}

// UpdateServiceInput represents input for updating a service. Nil fields keep their value.
type UpdateServiceInput struct {
	Name        *string
	Description *string
}

// StatusInput represents input for creating a task status
type StatusInput struct {
	Name         string
	Color        string
	NotifyClient bool
}

// UpdateStatusInput represents input for updating a task status. Nil fields keep their value.
type UpdateStatusInput struct {
	Name         *string
	Color        *string
	NotifyClient *bool
}

func (s *CatalogService) CreateService(ctx context.Context, input ServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	service := &models.Service{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, persistenceError("create service", err)
	}

	return service, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uint64) (*models.Service, error) {
	service, err := s.serviceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, persistenceError("find service", err)
	}
	return service, nil
}

func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, persistenceError("list services", err)
	}
	return services, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id uint64, input UpdateServiceInput) (*models.Service, error) {
	service, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		service.Name = name
	}
	if input.Description != nil {
		service.Description = strings.TrimSpace(*input.Description)
	}

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, persistenceError("update service", err)
	}

	return service, nil
}

// DeleteService deletes a service that no task references
func (s *CatalogService) DeleteService(ctx context.Context, id uint64) error {
	if err := ensureUnreferenced(ctx, s.taskRepo, "service_id", id); err != nil {
		return err
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceNotFound
		}
		return persistenceError("delete service", err)
	}
	return nil
}

func (s *CatalogService) CreateStatus(ctx context.Context, input StatusInput) (*models.TaskStatus, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	status := &models.TaskStatus{
		Name:         name,
		Color:        strings.TrimSpace(input.Color),
		NotifyClient: input.NotifyClient,
	}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, persistenceError("create status", err)
	}

	return status, nil
}

func (s *CatalogService) GetStatus(ctx context.Context, id uint64) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatusNotFound
		}
		return nil, persistenceError("find status", err)
	}
	return status, nil
}

func (s *CatalogService) ListStatuses(ctx context.Context) ([]models.TaskStatus, error) {
	statuses, err := s.statusRepo.List(ctx)
	if err != nil {
		return nil, persistenceError("list statuses", err)
	}
	return statuses, nil
}

// UpdateStatus edits a status. Changing NotifyClient affects only future transitions.
func (s *CatalogService) UpdateStatus(ctx context.Context, id uint64, input UpdateStatusInput) (*models.TaskStatus, error) {
	status, err := s.GetStatus(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		status.Name = name
	}
	if input.Color != nil {
		status.Color = strings.TrimSpace(*input.Color)
	}
	if input.NotifyClient != nil {
		status.NotifyClient = *input.NotifyClient
	}

	if err := s.statusRepo.Update(ctx, status); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, persistenceError("update status", err)
	}

	return status, nil
}

// DeleteStatus deletes a status that no task references
func (s *CatalogService) DeleteStatus(ctx context.Context, id uint64) error {
	if err := ensureUnreferenced(ctx, s.taskRepo, "status_id", id); err != nil {
		return err
	}

	if err := s.statusRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStatusNotFound
		}
		return persistenceError("delete status", err)
	}
	return nil
}
