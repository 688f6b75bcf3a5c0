package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/services"
)

type stubTaskLoader struct {
	tasks map[uint64]models.Task
	err   error
}

func (l stubTaskLoader) GetTask(_ context.Context, taskID uint64) (*models.Task, error) {
	if l.err != nil {
		return nil, l.err
	}
	task, ok := l.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("load %d: %w", taskID, services.ErrTaskNotFound)
	}
	return &task, nil
}

func TestRequireTask(t *testing.T) {
	gin.SetMode(gin.TestMode)
	loader := stubTaskLoader{tasks: map[uint64]models.Task{3: {ID: 3, Notes: "gutters"}}}

	tests := []struct {
		name     string
		loader   TaskLoader
		path     string
		wantCode int
	}{
		{"loaded", loader, "/tasks/3", http.StatusOK},
		{"missing", loader, "/tasks/4", http.StatusNotFound},
		{"malformed id", loader, "/tasks/x", http.StatusBadRequest},
		{"store failure", stubTaskLoader{err: errors.New("db down")}, "/tasks/3", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/tasks/:id", RequireTask(tt.loader), func(c *gin.Context) {
				task, ok := GetTask(c)
				if !ok {
					c.Status(http.StatusTeapot)
					return
				}
				c.String(http.StatusOK, task.Notes)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "gutters", w.Body.String())
			}
		})
	}
}
