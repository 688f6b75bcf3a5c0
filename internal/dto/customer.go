package dto

import (
	"time"

	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
}

// CustomerDTO represents a customer in API responses
type CustomerDTO struct {
	ID         uint64        `json:"id"`
	FullName   string        `json:"full_name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	CreatedAt  time.Time     `json:"created_at"`
	Properties []PropertyDTO `json:"properties,omitempty"`
}

// CustomerListResponse represents a paginated list of customers
type CustomerListResponse struct {
	Customers  []CustomerDTO `json:"customers"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}

// PropertyDTO represents a property in API responses
type PropertyDTO struct {
	ID         uint64    `json:"id"`
	CustomerID uint64    `json:"customer_id"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Zip        string    `json:"zip"`
	CreatedAt  time.Time `json:"created_at"`
}

// ServiceDTO represents a catalog service in API responses
type ServiceDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// StatusDTO represents a task status in API responses
type StatusDTO struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Color        string    `json:"color"`
	NotifyClient bool      `json:"notify_client"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

// ToCustomerDTO converts a Customer model to CustomerDTO
func ToCustomerDTO(customer models.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:        customer.ID,
		FullName:  customer.FullName,
		Email:     customer.EmailAddress(),
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	}

	if len(customer.Properties) > 0 {
		dto.Properties = ToPropertyDTOs(customer.Properties)
	}

	return dto
}

// ToCustomerListResponse converts a slice of customers to CustomerListResponse
func ToCustomerListResponse(customers []models.Customer, page, pageSize int, totalCount int64) CustomerListResponse {
	items := make([]CustomerDTO, len(customers))
	for i, customer := range customers {
		items[i] = ToCustomerDTO(customer)
	}

	return CustomerListResponse{
		Customers:  items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: utils.TotalPages(totalCount, pageSize),
	}
}

// ToPropertyDTO converts a Property model to PropertyDTO
func ToPropertyDTO(property models.Property) PropertyDTO {
	return PropertyDTO{
		ID:         property.ID,
		CustomerID: property.CustomerID,
		Address:    property.Address,
		City:       property.City,
		State:      property.State,
		Zip:        property.Zip,
		CreatedAt:  property.CreatedAt,
	}
}

// ToPropertyDTOs converts properties to DTOs
func ToPropertyDTOs(properties []models.Property) []PropertyDTO {
	items := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		items[i] = ToPropertyDTO(p)
	}
	return items
}

// ToServiceDTO converts a Service model to ServiceDTO
func ToServiceDTO(service models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		CreatedAt:   service.CreatedAt,
	}
}

// ToStatusDTO converts a TaskStatus model to StatusDTO
func ToStatusDTO(status models.TaskStatus) StatusDTO {
	return StatusDTO{
		ID:           status.ID,
		Name:         status.Name,
		Color:        status.Color,
		NotifyClient: status.NotifyClient,
		CreatedAt:    status.CreatedAt,
	}
}
