package services

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service wraps exactly one of these.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence failure")
)

var (
	ErrTaskNotFound     = fmt.Errorf("task %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrPropertyNotFound = fmt.Errorf("property %w", ErrNotFound)
	ErrServiceNotFound  = fmt.Errorf("service %w", ErrNotFound)
	ErrStatusNotFound   = fmt.Errorf("task status %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrCustomerRequired         = fmt.Errorf("%w: customer_id is required", ErrValidation)
	ErrPropertyRequired         = fmt.Errorf("%w: property_id is required", ErrValidation)
	ErrServiceRequired          = fmt.Errorf("%w: service_id is required", ErrValidation)
	ErrUnknownCustomer          = fmt.Errorf("%w: customer does not exist", ErrValidation)
	ErrUnknownProperty          = fmt.Errorf("%w: property does not exist", ErrValidation)
	ErrUnknownService           = fmt.Errorf("%w: service does not exist", ErrValidation)
	ErrUnknownStatus            = fmt.Errorf("%w: task status does not exist", ErrValidation)
	ErrDefaultStatusMissing     = fmt.Errorf("%w: no status_id given and no default status configured", ErrValidation)
	ErrPropertyCustomerMismatch = fmt.Errorf("%w: property does not belong to customer", ErrValidation)
	ErrNameRequired             = fmt.Errorf("%w: name is required", ErrValidation)
	ErrAddressIncomplete        = fmt.Errorf("%w: address, city, state and zip are required", ErrValidation)
	ErrInvalidAttachment        = fmt.Errorf("%w: attachments must be http(s) URLs", ErrValidation)
	ErrInvalidCredentials       = fmt.Errorf("%w: invalid email or password", ErrValidation)
	ErrPasswordTooShort         = fmt.Errorf("%w: password too short", ErrValidation)

	ErrEmailTaken        = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrNameTaken         = fmt.Errorf("%w: name already in use", ErrConflict)
	ErrDuplicateProperty = fmt.Errorf("%w: property already exists for this customer", ErrConflict)
	ErrInUse             = fmt.Errorf("%w: record is referenced by existing tasks", ErrConflict)
)

// persistenceError wraps a store failure with the operation that failed.
func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
