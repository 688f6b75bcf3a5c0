package dto

import (
	"time"

	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID           uint64       `json:"id"`
	CustomerID   uint64       `json:"customer_id"`
	PropertyID   uint64       `json:"property_id"`
	ServiceID    uint64       `json:"service_id"`
	StatusID     uint64       `json:"status_id"`
	Notes        string       `json:"notes"`
	ScheduledFor *time.Time   `json:"scheduled_for"`
	CompletedAt  *time.Time   `json:"completed_at"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	Customer     *CustomerDTO `json:"customer,omitempty"`
	Property     *PropertyDTO `json:"property,omitempty"`
	Service      *ServiceDTO  `json:"service,omitempty"`
	Status       *StatusDTO   `json:"status,omitempty"`
	Attachments  []string     `json:"attachments"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO `json:"tasks"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// NotificationLogDTO represents one channel attempt of a notification
type NotificationLogDTO struct {
	ID           uint64    `json:"id"`
	DispatchID   string    `json:"dispatch_id"`
	Channel      string    `json:"channel"`
	Recipient    string    `json:"recipient"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		CustomerID:   task.CustomerID,
		PropertyID:   task.PropertyID,
		ServiceID:    task.ServiceID,
		StatusID:     task.StatusID,
		Notes:        task.Notes,
		ScheduledFor: task.ScheduledFor,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		Attachments:  task.MediaURLs(),
	}

	// Include relations if preloaded
	if task.Customer.ID != 0 {
		customer := ToCustomerDTO(task.Customer)
		dto.Customer = &customer
	}
	if task.Property.ID != 0 {
		property := ToPropertyDTO(task.Property)
		dto.Property = &property
	}
	if task.Service.ID != 0 {
		service := ToServiceDTO(task.Service)
		dto.Service = &service
	}
	if task.Status.ID != 0 {
		status := ToStatusDTO(task.Status)
		dto.Status = &status
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, pageSize int, totalCount int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: utils.TotalPages(totalCount, pageSize),
	}
}

// ToNotificationLogDTOs converts notification log rows to DTOs
func ToNotificationLogDTOs(logs []models.NotificationLog) []NotificationLogDTO {
	items := make([]NotificationLogDTO, len(logs))
	for i, l := range logs {
		items[i] = NotificationLogDTO{
			ID:           l.ID,
			DispatchID:   l.DispatchID,
			Channel:      l.Channel,
			Recipient:    l.Recipient,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return items
}
