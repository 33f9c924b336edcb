package worker

import "worknook/models"

// ProfileInput carries the fields needed to create a worker profile.
type ProfileInput struct {
	ServiceType string
	Experience  string
	Bio         string
	DocumentRef string
}

// WorkerService manages worker profiles and the public directory.
type WorkerService interface {
	// CreateProfile creates the worker profile for a principal. Each account
	// holds at most one profile; a second attempt fails with DuplicateProfile.
	CreateProfile(p models.WorkerPrincipal, input ProfileInput) (*models.Worker, error)
	// FindByPrincipal returns the profile owned by the given account.
	FindByPrincipal(principalID string) (*models.Worker, error)
	// GetWorkerByID returns the public directory view of a worker.
	GetWorkerByID(id string) (*models.WorkerSummary, error)
	// ListWorkers returns the public directory, optionally filtered by
	// service type.
	ListWorkers(serviceType string) ([]models.WorkerSummary, error)
}
