package models

import "time"

// Service is a priced offering published by a worker. ServiceType is copied
// from the owning worker at creation and never client-supplied.
type Service struct {
	ID          string    `bson:"id" json:"id"`
	WorkerID    string    `bson:"worker_id" json:"worker_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	ServiceType string    `bson:"service_type" json:"service_type"`
	Price       float64   `bson:"price" json:"price"`
	IsAvailable bool      `bson:"is_available" json:"is_available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// ServicePatch is a partial update to a service. Nil fields are left
// untouched. Title, Description and Price additionally skip zero values;
// IsAvailable applies whenever present since false is a legitimate value.
type ServicePatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"is_available"`
}

// ServiceSummary is the listing slice of a service joined into bookings.
type ServiceSummary struct {
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	ServiceType string  `bson:"service_type" json:"service_type"`
	Price       float64 `bson:"price" json:"price"`
}

// ServiceView is a service joined with the public summary of its worker,
// returned by the unauthenticated read endpoints.
type ServiceView struct {
	Service
	Worker WorkerSummary `json:"worker"`
}
