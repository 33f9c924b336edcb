package listing

import "worknook/models"

// CreateInput carries the client-supplied fields of a new service listing.
// The service type is never part of it; it is copied from the owning worker.
type CreateInput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ListingService manages service listings.
type ListingService interface {
	// Create publishes a new listing owned by the caller's worker profile.
	Create(p models.WorkerPrincipal, input CreateInput) (*models.Service, error)
	// Update applies a partial update to a listing owned by the caller.
	Update(serviceID string, p models.WorkerPrincipal, patch models.ServicePatch) (*models.Service, error)
	// Remove deletes a listing owned by the caller. Not idempotent: removing
	// twice yields NotFound the second time.
	Remove(serviceID string, p models.WorkerPrincipal) error
	// List returns listings, optionally filtered by service type, joined
	// with the public worker summary. Unauthenticated.
	List(serviceType string) ([]models.ServiceView, error)
	// GetByID returns a single listing joined with the public worker
	// summary. Unauthenticated.
	GetByID(id string) (*models.ServiceView, error)
}
