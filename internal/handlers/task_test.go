package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/service-task-manager/internal/constants"
	"github.com/yukikurage/service-task-manager/internal/dto"
	apierrors "github.com/yukikurage/service-task-manager/internal/errors"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/testutil"
)

// TaskHandlerTestSuite drives the task endpoints through the full router
type TaskHandlerTestSuite struct {
	suite.Suite
	srv     *testServer
	cookies []*http.Cookie
	fixture testutil.Fixture
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.srv = newTestServer(suite.T())
	suite.cookies = suite.srv.login(suite.T())
	suite.fixture = testutil.SeedFixture(suite.T(), suite.srv.db, "casey@example.com", "(555) 123-4567")
}

func (suite *TaskHandlerTestSuite) request(method, path string, payload any) *httptest.ResponseRecorder {
	return suite.srv.do(suite.T(), method, path, payload, suite.cookies...)
}

func (suite *TaskHandlerTestSuite) createPayload() map[string]any {
	return map[string]any{
		"customer_id": suite.fixture.Customer.ID,
		"property_id": suite.fixture.Property.ID,
		"service_id":  suite.fixture.Service.ID,
		"notes":       "Front and back yard",
	}
}

func (suite *TaskHandlerTestSuite) createTask(payload map[string]any) dto.TaskDTO {
	w := suite.request(http.MethodPost, "/api/tasks", payload)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TaskDTO](suite.T(), w)
}

// TestCreateTask_DefaultStatusNotifies tests that a task created without a status is completed and announced
func (suite *TaskHandlerTestSuite) TestCreateTask_DefaultStatusNotifies() {
	payload := suite.createPayload()
	payload["attachments"] = []string{"https://cdn.example.com/before.jpg"}

	task := suite.createTask(payload)

	assert.Equal(suite.T(), "Completed", task.Status.Name)
	assert.Equal(suite.T(), "Casey Customer", task.Customer.FullName)
	assert.Equal(suite.T(), []string{"https://cdn.example.com/before.jpg"}, task.Attachments)

	suite.srv.tasks.Wait()
	suite.Require().Len(suite.srv.email.Attempts(), 1)
	suite.Require().Len(suite.srv.sms.Attempts(), 1)
	assert.Equal(suite.T(), "casey@example.com", suite.srv.email.Attempts()[0].To)
	assert.Equal(suite.T(), "+15551234567", suite.srv.sms.Attempts()[0].To)

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d/notifications", task.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response := decode[map[string][]dto.NotificationLogDTO](suite.T(), w)
	assert.Len(suite.T(), response["notifications"], 2)
}

// TestCreateTask_QuietStatus tests that a non-notifying status sends nothing
func (suite *TaskHandlerTestSuite) TestCreateTask_QuietStatus() {
	scheduled := testutil.Status(suite.T(), suite.srv.db, "Scheduled")
	payload := suite.createPayload()
	payload["status_id"] = scheduled.ID

	task := suite.createTask(payload)
	suite.srv.tasks.Wait()

	assert.Equal(suite.T(), scheduled.ID, task.StatusID)
	assert.Empty(suite.T(), suite.srv.email.Attempts())
	assert.Empty(suite.T(), suite.srv.sms.Attempts())
}

// TestCreateTask_BadRequests tests malformed and invalid bodies
func (suite *TaskHandlerTestSuite) TestCreateTask_BadRequests() {
	missingService := suite.createPayload()
	delete(missingService, "service_id")

	unknownCustomer := suite.createPayload()
	unknownCustomer["customer_id"] = 999

	badAttachment := suite.createPayload()
	badAttachment["attachments"] = []string{"ftp://files.example.com/x.jpg"}

	unknownStatus := suite.createPayload()
	unknownStatus["status_id"] = 999

	tests := []struct {
		name    string
		payload any
	}{
		{"malformed JSON", "{"},
		{"missing service_id", missingService},
		{"unknown customer", unknownCustomer},
		{"non-http attachment", badAttachment},
		{"unknown status", unknownStatus},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.request(http.MethodPost, "/api/tasks", tt.payload)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
			suite.Equal(apierrors.ErrCodeInvalidInput, decode[apierrors.APIError](suite.T(), w).Code)
		})
	}

	var count int64
	suite.srv.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

// TestTasks_Unauthenticated tests that the task routes require a session
func (suite *TaskHandlerTestSuite) TestTasks_Unauthenticated() {
	w := suite.srv.do(suite.T(), http.MethodGet, "/api/tasks", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.srv.do(suite.T(), http.MethodPost, "/api/tasks", suite.createPayload())
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestGetTask tests retrieval and missing tasks
func (suite *TaskHandlerTestSuite) TestGetTask() {
	created := suite.createTask(suite.createPayload())

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/tasks/%d", created.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	task := decode[dto.TaskDTO](suite.T(), w)
	assert.Equal(suite.T(), "Front and back yard", task.Notes)
	assert.Equal(suite.T(), "Lawn Care", task.Service.Name)

	w = suite.request(http.MethodGet, "/api/tasks/999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodGet, "/api/tasks/abc", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateTask_StatusChangeNotifies tests that moving into a notifying status announces once
func (suite *TaskHandlerTestSuite) TestUpdateTask_StatusChangeNotifies() {
	scheduled := testutil.Status(suite.T(), suite.srv.db, "Scheduled")
	completed := testutil.Status(suite.T(), suite.srv.db, "Completed")
	payload := suite.createPayload()
	payload["status_id"] = scheduled.ID
	created := suite.createTask(payload)
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	w := suite.request(http.MethodPut, path, map[string]any{"status_id": completed.ID})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	assert.Equal(suite.T(), "Completed", decode[dto.TaskDTO](suite.T(), w).Status.Name)

	// Same status again does not notify
	w = suite.request(http.MethodPut, path, map[string]any{"status_id": completed.ID, "notes": "Edged the walkway"})
	suite.Require().Equal(http.StatusOK, w.Code)

	suite.srv.tasks.Wait()
	assert.Len(suite.T(), suite.srv.email.Attempts(), 1)
	assert.Len(suite.T(), suite.srv.sms.Attempts(), 1)
}

// TestUpdateTask_ExplicitNullClearsDates tests that null clears scheduled_for while absent fields are kept
func (suite *TaskHandlerTestSuite) TestUpdateTask_ExplicitNullClearsDates() {
	payload := suite.createPayload()
	payload["scheduled_for"] = "2026-05-01T09:00:00Z"
	payload["completed_at"] = "2026-05-01T11:30:00Z"
	created := suite.createTask(payload)
	suite.Require().NotNil(created.ScheduledFor)

	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/%d", created.ID), `{"scheduled_for": null}`)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	task := decode[dto.TaskDTO](suite.T(), w)
	assert.Nil(suite.T(), task.ScheduledFor)
	suite.Require().NotNil(task.CompletedAt)
	assert.Equal(suite.T(), "Front and back yard", task.Notes)
}

// TestUpdateTask_Invalid tests update rejections
func (suite *TaskHandlerTestSuite) TestUpdateTask_Invalid() {
	created := suite.createTask(suite.createPayload())
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	w := suite.request(http.MethodPut, path, `not json`)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, path, map[string]any{"status_id": 999})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPut, "/api/tasks/999", map[string]any{"notes": "x"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListTasks tests filtering and pagination metadata
func (suite *TaskHandlerTestSuite) TestListTasks() {
	scheduled := testutil.Status(suite.T(), suite.srv.db, "Scheduled")
	quiet := suite.createPayload()
	quiet["status_id"] = scheduled.ID
	suite.createTask(quiet)
	suite.createTask(suite.createPayload())
	suite.createTask(suite.createPayload())

	w := suite.request(http.MethodGet, fmt.Sprintf("/api/tasks?status_id=%d", scheduled.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response := decode[dto.TaskListResponse](suite.T(), w)
	assert.Equal(suite.T(), int64(1), response.TotalCount)

	w = suite.request(http.MethodGet, "/api/tasks?limit=2&page=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	response = decode[dto.TaskListResponse](suite.T(), w)
	assert.Equal(suite.T(), int64(3), response.TotalCount)
	assert.Equal(suite.T(), 2, response.TotalPages)
	assert.Len(suite.T(), response.Tasks, 1)

	w = suite.request(http.MethodGet, "/api/tasks?customer_id=abc", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask tests deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	created := suite.createTask(suite.createPayload())
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	w := suite.request(http.MethodDelete, path, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, path, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetTask_WithoutMiddleware tests the handler guard when no task was loaded
func (suite *TaskHandlerTestSuite) TestGetTask_WithoutMiddleware() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil)

	NewTaskHandler(suite.srv.tasks).GetTask(c)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/tasks/1", nil)
	c.Set(constants.ContextKeyTask, models.Task{ID: 7, Notes: "from context"})

	NewTaskHandler(suite.srv.tasks).GetTask(c)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "from context", decode[dto.TaskDTO](suite.T(), w).Notes)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
