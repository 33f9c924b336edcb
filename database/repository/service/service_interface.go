package serviceRepo

import (
	"errors"

	"worknook/models"
)

// ErrNotFound is returned when no service listing matches the lookup.
var ErrNotFound = errors.New("service not found")

// ServiceRepository defines methods for service listing data access.
type ServiceRepository interface {
	// Create inserts a new service listing.
	Create(service *models.Service) error
	// GetByID retrieves a service by its unique ID.
	GetByID(id string) (*models.Service, error)
	// List returns services, optionally filtered by service type.
	List(serviceType string) ([]models.Service, error)
	// UpdateWithDocument patches a service document with the specified update document.
	UpdateWithDocument(id string, updateDoc interface{}) error
	// Delete removes a service listing by its ID.
	Delete(id string) error
}
