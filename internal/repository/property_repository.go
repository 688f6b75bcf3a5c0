package repository

import (
	"context"

	"github.com/yukikurage/service-task-manager/internal/models"
	"gorm.io/gorm"
)

// GormPropertyRepository is a GORM implementation of PropertyRepository
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new PropertyRepository
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &GormPropertyRepository{db: db}
}

func (r *GormPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Omit("Customer").Create(property).Error
}

func (r *GormPropertyRepository) FindByID(ctx context.Context, id uint64) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *GormPropertyRepository) ListByCustomer(ctx context.Context, customerID uint64) ([]models.Property, error) {
	var properties []models.Property
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *GormPropertyRepository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Omit("Customer").Save(property).Error
}

func (r *GormPropertyRepository) Delete(ctx context.Context, id uint64) error {
	return deleteByID(r.db.WithContext(ctx), &models.Property{}, id)
}
