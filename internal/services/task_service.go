package services

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/service-task-manager/internal/constants"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/notification"
	"github.com/yukikurage/service-task-manager/internal/repository"
	"github.com/yukikurage/service-task-manager/internal/utils"
	"gorm.io/gorm"
)

// TaskService creates and updates tasks and notifies customers when a task
// reaches a status flagged NotifyClient.
type TaskService struct {
	taskRepo      repository.TaskRepository
	statusRepo    repository.StatusRepository
	customerRepo  repository.CustomerRepository
	propertyRepo  repository.PropertyRepository
	serviceRepo   repository.ServiceRepository
	notifyLogRepo repository.NotificationLogRepository
	composer      *notification.Composer
	dispatcher    *notification.Dispatcher
	notifyTimeout time.Duration
	defaultStatus string
	inflight      sync.WaitGroup
}

// TaskServiceDeps holds the collaborators of a TaskService.
type TaskServiceDeps struct {
	Tasks               repository.TaskRepository
	Statuses            repository.StatusRepository
	Customers           repository.CustomerRepository
	Properties          repository.PropertyRepository
	Services            repository.ServiceRepository
	NotificationLogs    repository.NotificationLogRepository
	Composer            *notification.Composer
	Dispatcher          *notification.Dispatcher
	NotificationTimeout time.Duration
}

// NewTaskService creates a new TaskService
func NewTaskService(deps TaskServiceDeps) *TaskService {
	timeout := deps.NotificationTimeout
	if timeout <= 0 {
		timeout = constants.DefaultNotificationTimeout
	}

	return &TaskService{
		taskRepo:      deps.Tasks,
		statusRepo:    deps.Statuses,
		customerRepo:  deps.Customers,
		propertyRepo:  deps.Properties,
		serviceRepo:   deps.Services,
		notifyLogRepo: deps.NotificationLogs,
		composer:      deps.Composer,
		dispatcher:    deps.Dispatcher,
		notifyTimeout: timeout,
		defaultStatus: constants.DefaultTaskStatusName,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	CustomerID   uint64
	PropertyID   uint64
	ServiceID    uint64
	StatusID     *uint64
	Notes        string
	ScheduledFor *time.Time
	CompletedAt  *time.Time
	Attachments  []string
}

// UpdateTaskInput represents input for updating a task. Nil fields keep their value.
type UpdateTaskInput struct {
	CustomerID        *uint64
	PropertyID        *uint64
	ServiceID         *uint64
	StatusID          *uint64
	Notes             *string
	ScheduledFor      *time.Time
	ClearScheduledFor bool
	CompletedAt       *time.Time
	ClearCompletedAt  bool
	Attachments       []string
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	CustomerID *uint64
	PropertyID *uint64
	StatusID   *uint64
	Pagination utils.PaginationParams
}

// CreateTask validates and persists a new task. A customer notification is
// sent in the background when the task's status has NotifyClient set.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if input.CustomerID == 0 {
		return nil, ErrCustomerRequired
	}
	if input.PropertyID == 0 {
		return nil, ErrPropertyRequired
	}
	if input.ServiceID == 0 {
		return nil, ErrServiceRequired
	}

	attachments, err := normalizeAttachments(input.Attachments)
	if err != nil {
		return nil, err
	}

	if err := s.validateRelations(ctx, input.CustomerID, input.PropertyID, input.ServiceID); err != nil {
		return nil, err
	}

	status, err := s.resolveInitialStatus(ctx, input.StatusID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		CustomerID:   input.CustomerID,
		PropertyID:   input.PropertyID,
		ServiceID:    input.ServiceID,
		StatusID:     status.ID,
		Notes:        input.Notes,
		ScheduledFor: input.ScheduledFor,
		CompletedAt:  input.CompletedAt,
	}

	if err := s.taskRepo.CreateWithMedia(ctx, task, attachments); err != nil {
		return nil, persistenceError("create task", err)
	}

	created, err := s.taskRepo.FindWithRelations(ctx, task.ID)
	if err != nil {
		return nil, persistenceError("reload task", err)
	}

	if ShouldNotify(nil, SnapshotOf(*status)) {
		s.notifyAsync(ctx, *created)
	}

	return created, nil
}

// UpdateTask applies the supplied fields to an existing task. A customer
// notification is sent in the background only when the update supplies a
// status and ShouldNotify holds for the previous and new status.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, "Status")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, persistenceError("find task", err)
	}

	previous := SnapshotOf(task.Status)

	attachments, err := normalizeAttachments(input.Attachments)
	if err != nil {
		return nil, err
	}

	relationsChanged := false
	if input.CustomerID != nil {
		if *input.CustomerID == 0 {
			return nil, ErrCustomerRequired
		}
		task.CustomerID = *input.CustomerID
		relationsChanged = true
	}
	if input.PropertyID != nil {
		if *input.PropertyID == 0 {
			return nil, ErrPropertyRequired
		}
		task.PropertyID = *input.PropertyID
		relationsChanged = true
	}
	if input.ServiceID != nil {
		if *input.ServiceID == 0 {
			return nil, ErrServiceRequired
		}
		task.ServiceID = *input.ServiceID
		relationsChanged = true
	}
	if relationsChanged {
		if err := s.validateRelations(ctx, task.CustomerID, task.PropertyID, task.ServiceID); err != nil {
			return nil, err
		}
	}

	var next *models.TaskStatus
	if input.StatusID != nil {
		next, err = s.findStatus(ctx, *input.StatusID)
		if err != nil {
			return nil, err
		}
		task.StatusID = next.ID
	}

	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.ClearScheduledFor {
		task.ScheduledFor = nil
	} else if input.ScheduledFor != nil {
		task.ScheduledFor = input.ScheduledFor
	}
	if input.ClearCompletedAt {
		task.CompletedAt = nil
	} else if input.CompletedAt != nil {
		task.CompletedAt = input.CompletedAt
	}

	if err := s.taskRepo.UpdateWithMedia(ctx, task, attachments); err != nil {
		return nil, persistenceError("update task", err)
	}

	updated, err := s.taskRepo.FindWithRelations(ctx, task.ID)
	if err != nil {
		return nil, persistenceError("reload task", err)
	}

	if next != nil && ShouldNotify(&previous, SnapshotOf(*next)) {
		s.notifyAsync(ctx, *updated)
	}

	return updated, nil
}

// GetTask returns a task with related data
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindWithRelations(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, persistenceError("find task", err)
	}

	return task, nil
}

// ListTasks returns tasks matching the filters
func (s *TaskService) ListTasks(ctx context.Context, input ListTasksInput) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(ctx, repository.TaskFilter{
		CustomerID: input.CustomerID,
		PropertyID: input.PropertyID,
		StatusID:   input.StatusID,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, persistenceError("list tasks", err)
	}

	return tasks, total, nil
}

// DeleteTask deletes a task and its media
func (s *TaskService) DeleteTask(ctx context.Context, taskID uint64) error {
	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return persistenceError("delete task", err)
	}

	return nil
}

// ListNotifications returns the notification history of a task
func (s *TaskService) ListNotifications(ctx context.Context, taskID uint64) ([]models.NotificationLog, error) {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, persistenceError("find task", err)
	}

	logs, err := s.notifyLogRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, persistenceError("list notifications", err)
	}

	return logs, nil
}

// Wait blocks until every background notification has settled.
func (s *TaskService) Wait() {
	s.inflight.Wait()
}

// notifyAsync dispatches the notification without holding up the caller. The
// dispatch outlives the request context but is bounded by notifyTimeout.
func (s *TaskService) notifyAsync(ctx context.Context, task models.Task) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		s.notify(nctx, task)
	}()
}

func (s *TaskService) notify(ctx context.Context, task models.Task) {
	email, hasEmail, renderErr := s.composer.ComposeEmail(task)
	if renderErr != nil {
		log.Printf("Notification compose failed: task=%d channel=%s error=%v", task.ID, notification.ChannelEmail, renderErr)
	}
	if !hasEmail && renderErr == nil {
		log.Printf("Notification skipped: task=%d channel=%s reason=no email recipient", task.ID, notification.ChannelEmail)
	}

	sms, hasSMS := s.composer.ComposeSMS(task)
	if !hasSMS {
		log.Printf("Notification skipped: task=%d channel=%s reason=no valid phone", task.ID, notification.ChannelSMS)
	}

	report := s.dispatcher.Dispatch(ctx, task.ID, email, sms)
	if renderErr != nil {
		report.Email = notification.Outcome{
			Channel:   notification.ChannelEmail,
			Recipient: task.Customer.EmailAddress(),
			Status:    notification.OutcomeFailed,
			Err:       &notification.ChannelError{TaskID: task.ID, Channel: notification.ChannelEmail, Err: renderErr},
		}
	}

	s.recordReport(ctx, report)
}

func (s *TaskService) recordReport(ctx context.Context, report notification.Report) {
	if s.notifyLogRepo == nil {
		return
	}

	logs := []models.NotificationLog{
		logEntry(report, report.Email),
		logEntry(report, report.SMS),
	}

	// The log write must not be lost to a dispatch that used up its timeout.
	if err := s.notifyLogRepo.Create(context.WithoutCancel(ctx), logs...); err != nil {
		log.Printf("Failed to record notification log: task=%d dispatch=%s error=%v", report.TaskID, report.DispatchID, err)
	}
}

func logEntry(report notification.Report, outcome notification.Outcome) models.NotificationLog {
	entry := models.NotificationLog{
		TaskID:     report.TaskID,
		DispatchID: report.DispatchID,
		Channel:    string(outcome.Channel),
		Recipient:  outcome.Recipient,
		Status:     string(outcome.Status),
	}
	if outcome.Err != nil {
		entry.ErrorMessage = outcome.Err.Error()
	}
	return entry
}

// validateRelations checks that the customer, property and service exist and
// that the property belongs to the customer.
func (s *TaskService) validateRelations(ctx context.Context, customerID, propertyID, serviceID uint64) error {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownCustomer
		}
		return persistenceError("find customer", err)
	}

	property, err := s.propertyRepo.FindByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownProperty
		}
		return persistenceError("find property", err)
	}
	if property.CustomerID != customerID {
		return ErrPropertyCustomerMismatch
	}

	if _, err := s.serviceRepo.FindByID(ctx, serviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownService
		}
		return persistenceError("find service", err)
	}

	return nil
}

// resolveInitialStatus returns the requested status, or the default status by name.
func (s *TaskService) resolveInitialStatus(ctx context.Context, statusID *uint64) (*models.TaskStatus, error) {
	if statusID != nil {
		return s.findStatus(ctx, *statusID)
	}

	status, err := s.statusRepo.FindByNameCaseInsensitive(ctx, s.defaultStatus)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDefaultStatusMissing
		}
		return nil, persistenceError("find default status", err)
	}

	return status, nil
}

func (s *TaskService) findStatus(ctx context.Context, id uint64) (*models.TaskStatus, error) {
	if id == 0 {
		return nil, ErrUnknownStatus
	}

	status, err := s.statusRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownStatus
		}
		return nil, persistenceError("find status", err)
	}

	return status, nil
}

// normalizeAttachments trims, drops blanks and rejects anything that is not an absolute http(s) URL.
func normalizeAttachments(raw []string) ([]string, error) {
	urls := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}

		u, err := url.Parse(r)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrInvalidAttachment
		}
		urls = append(urls, r)
	}

	return urls, nil
}
