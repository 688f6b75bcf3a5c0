package middleware

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/constants"
	apierrors "github.com/yukikurage/service-task-manager/internal/errors"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/services"
)

// TaskLoader loads a task with its relations
type TaskLoader interface {
	GetTask(ctx context.Context, taskID uint64) (*models.Task, error)
}

// RequireTask loads the task named by the :id parameter into the context
func RequireTask(loader TaskLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			return
		}

		task, err := loader.GetTask(c.Request.Context(), taskID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				apierrors.NotFound(c, "Task not found")
			} else {
				log.Printf("Failed to load task %d: %v", taskID, err)
				apierrors.InternalError(c, "Failed to load task")
			}
			return
		}

		c.Set(constants.ContextKeyTask, *task)
		c.Next()
	}
}

// GetTask retrieves the task loaded by RequireTask
func GetTask(c *gin.Context) (models.Task, bool) {
	value, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return models.Task{}, false
	}
	task, ok := value.(models.Task)
	return task, ok
}
