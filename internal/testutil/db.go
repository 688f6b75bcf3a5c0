// Package testutil holds database and transport doubles shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/service-task-manager/internal/database"
	"github.com/yukikurage/service-task-manager/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database seeded with the default statuses.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each connection to ":memory:" is its own database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	require.NoError(t, database.SeedStatuses(db))

	return db
}

// Fixture is a customer with one property and a catalog service.
type Fixture struct {
	Customer models.Customer
	Property models.Property
	Service  models.Service
}

// SeedFixture creates a customer reachable at email and phone with one property.
// Every fixture shares the same "Lawn Care" service.
func SeedFixture(t testing.TB, db *gorm.DB, email, phone string) Fixture {
	t.Helper()

	customer := models.Customer{FullName: "Casey Customer", Phone: phone}
	if email != "" {
		customer.Email = &email
	}
	require.NoError(t, db.Create(&customer).Error)

	property := models.Property{
		Address:    "12 Elm Street",
		City:       "Springfield",
		State:      "IL",
		Zip:        "62704",
		CustomerID: customer.ID,
	}
	require.NoError(t, db.Create(&property).Error)

	var service models.Service
	require.NoError(t, db.Where(models.Service{Name: "Lawn Care"}).
		Attrs(models.Service{Description: "Mowing, edging and cleanup"}).
		FirstOrCreate(&service).Error)

	return Fixture{Customer: customer, Property: property, Service: service}
}

// Status returns the seeded status with the given name.
func Status(t testing.TB, db *gorm.DB, name string) models.TaskStatus {
	t.Helper()

	var status models.TaskStatus
	require.NoError(t, db.Where("name = ?", name).First(&status).Error)
	return status
}
