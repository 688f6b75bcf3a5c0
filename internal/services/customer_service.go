package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/notification"
	"github.com/yukikurage/service-task-manager/internal/repository"
	"github.com/yukikurage/service-task-manager/internal/utils"
	"gorm.io/gorm"
)

// CustomerService manages customers and their properties.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	propertyRepo repository.PropertyRepository
	taskRepo     repository.TaskRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	propertyRepo repository.PropertyRepository,
	taskRepo repository.TaskRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		propertyRepo: propertyRepo,
		taskRepo:     taskRepo,
	}
}

// CustomerInput represents input for creating a customer
type CustomerInput struct {
	FullName string
	Email    string
	Phone    string
}

// UpdateCustomerInput represents input for updating a customer. Nil fields keep their value.
type UpdateCustomerInput struct {
	FullName *string
	Email    *string
	Phone    *string
}

// PropertyInput represents input for creating a property
type PropertyInput struct {
	Address string
	City    string
	State   string
	Zip     string
}

// UpdatePropertyInput represents input for updating a property. Nil fields keep their value.
type UpdatePropertyInput struct {
	Address *string
	City    *string
	State   *string
	Zip     *string
}

// CreateCustomer creates a customer. The phone is stored as digits only and
// an empty email is stored as NULL.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.FullName)
	if name == "" {
		return nil, ErrNameRequired
	}

	customer := &models.Customer{
		FullName: name,
		Email:    optionalEmail(input.Email),
		Phone:    notification.DigitsOnly(input.Phone),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, persistenceError("create customer", err)
	}

	return customer, nil
}

// GetCustomer returns a customer with their properties
func (s *CustomerService) GetCustomer(ctx context.Context, id uint64) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id, "Properties")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, persistenceError("find customer", err)
	}

	return customer, nil
}

// ListCustomers returns customers whose name, email or phone contains search
func (s *CustomerService) ListCustomers(ctx context.Context, search string, params utils.PaginationParams) ([]models.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, search, params)
	if err != nil {
		return nil, 0, persistenceError("list customers", err)
	}

	return customers, total, nil
}

// UpdateCustomer applies the supplied fields to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint64, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, persistenceError("find customer", err)
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if name == "" {
			return nil, ErrNameRequired
		}
		customer.FullName = name
	}
	if input.Email != nil {
		customer.Email = optionalEmail(*input.Email)
	}
	if input.Phone != nil {
		customer.Phone = notification.DigitsOnly(*input.Phone)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, persistenceError("update customer", err)
	}

	return customer, nil
}

// DeleteCustomer deletes a customer and their properties. Customers with tasks cannot be deleted.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint64) error {
	if err := s.ensureUnreferenced(ctx, "customer_id", id); err != nil {
		return err
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCustomerNotFound
		}
		return persistenceError("delete customer", err)
	}

	return nil
}

// CreateProperty adds a property to a customer
func (s *CustomerService) CreateProperty(ctx context.Context, customerID uint64, input PropertyInput) (*models.Property, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, persistenceError("find customer", err)
	}

	property := &models.Property{
		Address:    strings.TrimSpace(input.Address),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		Zip:        strings.TrimSpace(input.Zip),
		CustomerID: customerID,
	}
	if !addressComplete(property) {
		return nil, ErrAddressIncomplete
	}

	if err := s.propertyRepo.Create(ctx, property); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProperty
		}
		return nil, persistenceError("create property", err)
	}

	return property, nil
}

// ListProperties returns the properties of a customer
func (s *CustomerService) ListProperties(ctx context.Context, customerID uint64) ([]models.Property, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, persistenceError("find customer", err)
	}

	properties, err := s.propertyRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, persistenceError("list properties", err)
	}

	return properties, nil
}

// GetProperty returns a property by ID
func (s *CustomerService) GetProperty(ctx context.Context, id uint64) (*models.Property, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, persistenceError("find property", err)
	}

	return property, nil
}

// UpdateProperty applies the supplied address fields to a property
func (s *CustomerService) UpdateProperty(ctx context.Context, id uint64, input UpdatePropertyInput) (*models.Property, error) {
	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Address != nil {
		property.Address = strings.TrimSpace(*input.Address)
	}
	if input.City != nil {
		property.City = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		property.State = strings.TrimSpace(*input.State)
	}
	if input.Zip != nil {
		property.Zip = strings.TrimSpace(*input.Zip)
	}
	if !addressComplete(property) {
		return nil, ErrAddressIncomplete
	}

	if err := s.propertyRepo.Update(ctx, property); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateProperty
		}
		return nil, persistenceError("update property", err)
	}

	return property, nil
}

// DeleteProperty deletes a property that no task references
func (s *CustomerService) DeleteProperty(ctx context.Context, id uint64) error {
	if err := s.ensureUnreferenced(ctx, "property_id", id); err != nil {
		return err
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		return persistenceError("delete property", err)
	}

	return nil
}

func (s *CustomerService) ensureUnreferenced(ctx context.Context, column string, id uint64) error {
	return ensureUnreferenced(ctx, s.taskRepo, column, id)
}

// ensureUnreferenced returns ErrInUse when any task points at the row.
func ensureUnreferenced(ctx context.Context, tasks repository.TaskRepository, column string, id uint64) error {
	count, err := tasks.CountByReference(ctx, column, id)
	if err != nil {
		return persistenceError("count task references", err)
	}
	if count > 0 {
		return ErrInUse
	}
	return nil
}

func optionalEmail(email string) *string {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	return &email
}

func addressComplete(p *models.Property) bool {
	return p.Address != "" && p.City != "" && p.State != "" && p.Zip != ""
}
