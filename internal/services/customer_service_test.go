package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/service-task-manager/internal/models"
	"github.com/yukikurage/service-task-manager/internal/repository"
	"github.com/yukikurage/service-task-manager/internal/testutil"
	"github.com/yukikurage/service-task-manager/internal/utils"
	"gorm.io/gorm"
)

func newTestCustomerService(t *testing.T) (*CustomerService, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	svc := NewCustomerService(
		repository.NewCustomerRepository(db),
		repository.NewPropertyRepository(db),
		repository.NewTaskRepository(db),
	)
	return svc, db
}

func TestCustomerService_CreateCustomer(t *testing.T) {
	svc, _ := newTestCustomerService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, CustomerInput{
		FullName: "  Dana Client ",
		Email:    " Dana@Example.com ",
		Phone:    "(555) 123-4567",
	})
	require.NoError(t, err)

	assert.Equal(t, "Dana Client", customer.FullName)
	assert.Equal(t, "dana@example.com", customer.EmailAddress())
	assert.Equal(t, "5551234567", customer.Phone)

	_, err = svc.CreateCustomer(ctx, CustomerInput{FullName: "Dup", Email: "dana@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.CreateCustomer(ctx, CustomerInput{FullName: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestCustomerService_CustomersWithoutEmailDoNotConflict(t *testing.T) {
	svc, _ := newTestCustomerService(t)
	ctx := context.Background()

	first, err := svc.CreateCustomer(ctx, CustomerInput{FullName: "No Email One"})
	require.NoError(t, err)
	second, err := svc.CreateCustomer(ctx, CustomerInput{FullName: "No Email Two", Email: "  "})
	require.NoError(t, err)

	assert.Nil(t, first.Email)
	assert.Nil(t, second.Email)
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	svc, _ := newTestCustomerService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, CustomerInput{FullName: "Pat", Email: "pat@example.com", Phone: "5550001111"})
	require.NoError(t, err)

	phone := "+1 (555) 222-3333"
	updated, err := svc.UpdateCustomer(ctx, customer.ID, UpdateCustomerInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "15552223333", updated.Phone)
	assert.Equal(t, "pat@example.com", updated.EmailAddress())

	_, err = svc.UpdateCustomer(ctx, 999, UpdateCustomerInput{Phone: &phone})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCustomerService_ListCustomersSearch(t *testing.T) {
	svc, _ := newTestCustomerService(t)
	ctx := context.Background()

	for _, name := range []string{"Alice Smith", "Bob Jones", "Alicia Keys"} {
		_, err := svc.CreateCustomer(ctx, CustomerInput{FullName: name})
		require.NoError(t, err)
	}

	customers, total, err := svc.ListCustomers(ctx, "ali", utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, customers, 2)
}

func TestCustomerService_Properties(t *testing.T) {
	svc, _ := newTestCustomerService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, CustomerInput{FullName: "Owner"})
	require.NoError(t, err)

	input := PropertyInput{Address: "1 Main St", City: "Austin", State: "TX", Zip: "73301"}
	property, err := svc.CreateProperty(ctx, customer.ID, input)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, property.CustomerID)

	_, err = svc.CreateProperty(ctx, customer.ID, input)
	assert.ErrorIs(t, err, ErrDuplicateProperty)

	_, err = svc.CreateProperty(ctx, customer.ID, PropertyInput{Address: "2 Main St", City: "Austin"})
	assert.ErrorIs(t, err, ErrAddressIncomplete)

	_, err = svc.CreateProperty(ctx, 999, input)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	properties, err := svc.ListProperties(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, properties, 1)

	loaded, err := svc.GetCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Properties, 1)
}

func TestCustomerService_DeleteRefusedWhileTasksReferenceCustomer(t *testing.T) {
	svc, db := newTestCustomerService(t)
	ctx := context.Background()
	fixture := testutil.SeedFixture(t, db, "ref@example.com", "5550009999")
	status := testutil.Status(t, db, "Scheduled")

	task := models.Task{
		CustomerID: fixture.Customer.ID,
		PropertyID: fixture.Property.ID,
		ServiceID:  fixture.Service.ID,
		StatusID:   status.ID,
	}
	require.NoError(t, db.Create(&task).Error)

	err := svc.DeleteCustomer(ctx, fixture.Customer.ID)
	assert.ErrorIs(t, err, ErrInUse)

	err = svc.DeleteProperty(ctx, fixture.Property.ID)
	assert.ErrorIs(t, err, ErrInUse)

	require.NoError(t, db.Delete(&task).Error)
	require.NoError(t, svc.DeleteCustomer(ctx, fixture.Customer.ID))

	var properties int64
	require.NoError(t, db.Model(&models.Property{}).Count(&properties).Error)
	assert.Zero(t, properties)

	assert.ErrorIs(t, svc.DeleteCustomer(ctx, fixture.Customer.ID), ErrCustomerNotFound)
}
