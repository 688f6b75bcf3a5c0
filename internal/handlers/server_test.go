package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/service-task-manager/internal/constants"
	"github.com/yukikurage/service-task-manager/internal/notification"
	"github.com/yukikurage/service-task-manager/internal/repository"
	"github.com/yukikurage/service-task-manager/internal/services"
	"github.com/yukikurage/service-task-manager/internal/testutil"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "supersecret"
)

// testServer is the full /api router over an in-memory database.
type testServer struct {
	db     *gorm.DB
	router *gin.Engine
	tasks  *services.TaskService
	auth   *services.AuthService
	email  *testutil.EmailRecorder
	sms    *testutil.SMSRecorder
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	taskRepo := repository.NewTaskRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	email := &testutil.EmailRecorder{}
	sms := &testutil.SMSRecorder{}

	authService := services.NewAuthService(repository.NewUserRepository(db))
	_, err := authService.EnsureAdmin(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	taskService := services.NewTaskService(services.TaskServiceDeps{
		Tasks:            taskRepo,
		Statuses:         statusRepo,
		Customers:        customerRepo,
		Properties:       propertyRepo,
		Services:         serviceRepo,
		NotificationLogs: repository.NewNotificationLogRepository(db),
		Composer:         notification.NewComposer("Green Acres", "Call us at (555) 010-2000"),
		Dispatcher:       notification.NewDispatcher(email, sms),
	})
	t.Cleanup(taskService.Wait)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	RegisterRoutes(r, Services{
		Auth:      authService,
		Customers: services.NewCustomerService(customerRepo, propertyRepo, taskRepo),
		Catalog:   services.NewCatalogService(serviceRepo, statusRepo, taskRepo),
		Tasks:     taskService,
	})

	return &testServer{
		db:     db,
		router: r,
		tasks:  taskService,
		auth:   authService,
		email:  email,
		sms:    sms,
	}
}

// do sends a JSON request, attaching cookies when given.
func (s *testServer) do(t *testing.T, method, path string, payload any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	switch p := payload.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(p))
	default:
		raw, err := json.Marshal(p)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// login returns the session cookies of the seeded admin.
func (s *testServer) login(t *testing.T) []*http.Cookie {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
