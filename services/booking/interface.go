package booking

import (
	"time"

	"worknook/models"
)

// CreateInput carries the client-supplied fields of a new booking.
type CreateInput struct {
	ServiceID string
	Date      time.Time
	Note      string
}

// RateInput carries a one-time rating for a completed booking.
type RateInput struct {
	Score   float64
	Comment string
}

// BookingService owns the booking lifecycle and the rating aggregation.
type BookingService interface {
	// Create books an available service for a client. The owning worker is
	// snapshotted from the service at creation time.
	Create(p models.ClientPrincipal, input CreateInput) (*models.Booking, error)
	// Transition moves a booking along its lifecycle. Only the owning
	// worker may transition; illegal edges fail with InvalidTransition.
	Transition(bookingID string, p models.WorkerPrincipal, newStatus models.BookingStatus) (*models.Booking, error)
	// ListForClient returns the client's bookings, newest date first,
	// enriched with service and counterpart summaries.
	ListForClient(p models.ClientPrincipal) ([]models.BookingView, error)
	// ListForWorker returns the worker's bookings, newest date first,
	// enriched with service and counterpart summaries.
	ListForWorker(p models.WorkerPrincipal) ([]models.BookingView, error)
	// Rate attaches a one-time rating to a completed booking owned by the
	// caller and folds the score into the worker's reputation.
	Rate(bookingID string, p models.ClientPrincipal, input RateInput) (*models.Booking, error)
}
