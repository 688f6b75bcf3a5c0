package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/service-task-manager/internal/middleware"
	"github.com/yukikurage/service-task-manager/internal/services"
)

// Services are the business services exposed over HTTP.
type Services struct {
	Auth      *services.AuthService
	Customers *services.CustomerService
	Catalog   *services.CatalogService
	Tasks     *services.TaskService
}

// RegisterRoutes mounts the /api routes on r. Session middleware must already be installed.
func RegisterRoutes(r gin.IRouter, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	customerHandler := NewCustomerHandler(svc.Customers)
	catalogHandler := NewCatalogHandler(svc.Catalog)
	taskHandler := NewTaskHandler(svc.Tasks)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())

		customers := protected.Group("/customers")
		{
			customers.GET("", customerHandler.ListCustomers)
			customers.POST("", customerHandler.CreateCustomer)
			customers.GET("/:id", customerHandler.GetCustomer)
			customers.PUT("/:id", customerHandler.UpdateCustomer)
			customers.DELETE("/:id", customerHandler.DeleteCustomer)
			customers.GET("/:id/properties", customerHandler.ListProperties)
			customers.POST("/:id/properties", customerHandler.CreateProperty)
		}

		properties := protected.Group("/properties")
		{
			properties.GET("/:id", customerHandler.GetProperty)
			properties.PUT("/:id", customerHandler.UpdateProperty)
			properties.DELETE("/:id", customerHandler.DeleteProperty)
		}

		catalog := protected.Group("/services")
		{
			catalog.GET("", catalogHandler.ListServices)
			catalog.POST("", catalogHandler.CreateService)
			catalog.GET("/:id", catalogHandler.GetService)
			catalog.PUT("/:id", catalogHandler.UpdateService)
			catalog.DELETE("/:id", catalogHandler.DeleteService)
		}

		statuses := protected.Group("/statuses")
		{
			statuses.GET("", catalogHandler.ListStatuses)
			statuses.POST("", catalogHandler.CreateStatus)
			statuses.GET("/:id", catalogHandler.GetStatus)
			statuses.PUT("/:id", catalogHandler.UpdateStatus)
			statuses.DELETE("/:id", catalogHandler.DeleteStatus)
		}

		tasks := protected.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", middleware.RequireTask(svc.Tasks), taskHandler.GetTask)
			tasks.PUT("/:id", middleware.RequireTask(svc.Tasks), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTask(svc.Tasks), taskHandler.DeleteTask)
			tasks.GET("/:id/notifications", middleware.RequireTask(svc.Tasks), taskHandler.ListNotifications)
		}
	}
}
