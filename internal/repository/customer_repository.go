package repository

import (
	"context"
	"strings"

	"github.com/yukikurage/service-task-manager/internal/database"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/utils"
	"gorm.io/gorm"
)

// GormCustomerRepository is a GORM implementation of CustomerRepository
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Omit("Properties").Create(customer).Error
}

func (r *GormCustomerRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Customer, error) {
	var customer models.Customer
	query := r.db.WithContext(ctx)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List retrieves customers matching search (name, email or phone) with pagination
func (r *GormCustomerRepository) List(ctx context.Context, search string, params utils.PaginationParams) ([]models.Customer, int64, error) {
	var customers []models.Customer

	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("full_name ASC").Scopes(database.Paginate(params)).Find(&customers).Error; err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *GormCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Omit("Properties").Save(customer).Error
}

// Delete deletes a customer and their properties in a transaction
func (r *GormCustomerRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customer_id = ?", id).Delete(&models.Property{}).Error; err != nil {
			return err
		}
		return deleteByID(tx, &models.Customer{}, id)
	})
}
