package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/dto"
	apierrors "github.com/yukikurage/service-task-manager/internal/errors"
	"github.com/yukikurage/service-task-manager/internal/middleware"
	"github.com/yukikurage/service-task-manager/internal/services"
	"github.com/yukikurage/service-task-manager/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns tasks, optionally filtered by customer_id, property_id and status_id
func (h *TaskHandler) ListTasks(c *gin.Context) {
	customerID, ok := parseOptionalIDQuery(c, "customer_id")
	if !ok {
		return
	}
	propertyID, ok := parseOptionalIDQuery(c, "property_id")
	if !ok {
		return
	}
	statusID, ok := parseOptionalIDQuery(c, "status_id")
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), services.ListTasksInput{
		CustomerID: customerID,
		PropertyID: propertyID,
		StatusID:   statusID,
		Pagination: params,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params.Page, params.Limit, total))
}

// GetTask returns a specific task by ID
// Task is already loaded with relations by RequireTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task. Customer notification happens in the background.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		CustomerID   uint64     `json:"customer_id" binding:"required"`
		PropertyID   uint64     `json:"property_id" binding:"required"`
		ServiceID    uint64     `json:"service_id" binding:"required"`
		StatusID     *uint64    `json:"status_id"`
		Notes        string     `json:"notes"`
		ScheduledFor *time.Time `json:"scheduled_for"`
		CompletedAt  *time.Time `json:"completed_at"`
		Attachments  []string   `json:"attachments"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		CustomerID:   req.CustomerID,
		PropertyID:   req.PropertyID,
		ServiceID:    req.ServiceID,
		StatusID:     req.StatusID,
		Notes:        req.Notes,
		ScheduledFor: req.ScheduledFor,
		CompletedAt:  req.CompletedAt,
		Attachments:  req.Attachments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates the fields present in the body. An explicit null clears
// scheduled_for or completed_at.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		CustomerID   *uint64    `json:"customer_id"`
		PropertyID   *uint64    `json:"property_id"`
		ServiceID    *uint64    `json:"service_id"`
		StatusID     *uint64    `json:"status_id"`
		Notes        *string    `json:"notes"`
		ScheduledFor *time.Time `json:"scheduled_for"`
		CompletedAt  *time.Time `json:"completed_at"`
		Attachments  []string   `json:"attachments"`
	}

	body, err := c.GetRawData()
	if err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var req UpdateTaskRequest
	if err := json.Unmarshal(body, &req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	// Parse raw JSON to detect which fields were sent as null
	var rawReq map[string]json.RawMessage
	if err := json.Unmarshal(body, &rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(c.Request.Context(), task.ID, services.UpdateTaskInput{
		CustomerID:        req.CustomerID,
		PropertyID:        req.PropertyID,
		ServiceID:         req.ServiceID,
		StatusID:          req.StatusID,
		Notes:             req.Notes,
		ScheduledFor:      req.ScheduledFor,
		ClearScheduledFor: isExplicitNull(rawReq, "scheduled_for"),
		CompletedAt:       req.CompletedAt,
		ClearCompletedAt:  isExplicitNull(rawReq, "completed_at"),
		Attachments:       req.Attachments,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// DeleteTask deletes a task and its media
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), task.ID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// ListNotifications returns the notification history of a task
func (h *TaskHandler) ListNotifications(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	logs, err := h.taskService.ListNotifications(c.Request.Context(), task.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": dto.ToNotificationLogDTOs(logs),
	})
}

func isExplicitNull(raw map[string]json.RawMessage, key string) bool {
	value, ok := raw[key]
	return ok && string(value) == "null"
}
