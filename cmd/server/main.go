package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/config"
	"github.com/yukikurage/service-task-manager/internal/constants"
	"github.com/yukikurage/service-task-manager/internal/database"
	"github.com/yukikurage/service-task-manager/internal/handlers"
	"github.com/yukikurage/service-task-manager/internal/notification"
	"github.com/yukikurage/service-task-manager/internal/repository"
	"github.com/yukikurage/service-task-manager/internal/services"
)

const shutdownTimeout = 45 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.SeedStatuses(database.GetDB()); err != nil {
		log.Fatalf("Failed to seed statuses: %v", err)
	}

	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	serviceRepo := repository.NewServiceRepository(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	if _, err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	taskService := services.NewTaskService(services.TaskServiceDeps{
		Tasks:               taskRepo,
		Statuses:            statusRepo,
		Customers:           customerRepo,
		Properties:          propertyRepo,
		Services:            serviceRepo,
		NotificationLogs:    repository.NewNotificationLogRepository(db),
		Composer:            notification.NewComposer(cfg.BusinessName, cfg.ContactLine),
		Dispatcher:          notification.NewDispatcher(emailSender(cfg), smsSender(cfg)),
		NotificationTimeout: cfg.NotificationTimeout,
	})

	// Initialize Gin router
	r := gin.Default()

	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Service Task Manager is running",
		})
	})

	handlers.RegisterRoutes(r, handlers.Services{
		Auth:      authService,
		Customers: services.NewCustomerService(customerRepo, propertyRepo, taskRepo),
		Catalog:   services.NewCatalogService(serviceRepo, statusRepo, taskRepo),
		Tasks:     taskService,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				log.Println("Shutting down...")
				if err := srv.Shutdown(ctx); err != nil {
					return err
				}
				// Let in-flight notifications settle; each is bounded by NOTIFICATION_TIMEOUT.
				taskService.Wait()
				return nil
			},
		},
	)

	exitCode := <-wait
	log.Printf("Server stopped with code: %d", exitCode)
	os.Exit(exitCode)
}

func sessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "cookie" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	return redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
}

func emailSender(cfg *config.Config) notification.EmailSender {
	if !cfg.EmailConfigured() {
		log.Println("SMTP not configured, emails will be logged only")
		return notification.LogSender{}
	}
	return notification.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.BusinessName)
}

func smsSender(cfg *config.Config) notification.SMSSender {
	if !cfg.SMSConfigured() {
		log.Println("Twilio not configured, SMS will be logged only")
		return notification.LogSender{}
	}
	return notification.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber)
}
