package workerRepo

import (
	"errors"

	"worknook/models"
)

// ErrNotFound is returned when no worker profile matches the lookup.
var ErrNotFound = errors.New("worker not found")

// WorkerRepository defines methods for worker profile data access.
type WorkerRepository interface {
	// Create inserts a new worker profile.
	Create(worker *models.Worker) error
	// GetByID retrieves a worker by its unique ID.
	GetByID(id string) (*models.Worker, error)
	// GetByUserID retrieves the worker profile owned by an account.
	GetByUserID(userID string) (*models.Worker, error)
	// List returns workers, optionally filtered by service type.
	List(serviceType string) ([]models.Worker, error)
	// UpdateWithDocument patches a worker document with the specified update document.
	UpdateWithDocument(id string, updateDoc interface{}) error
}
