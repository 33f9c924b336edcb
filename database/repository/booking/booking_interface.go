package bookingRepo

import (
	"context"
	"errors"

	"worknook/models"
)

var (
	// ErrNotFound is returned when no booking matches the lookup.
	ErrNotFound = errors.New("booking not found")
	// ErrStatusConflict is returned when a conditional status update matched
	// no document, i.e. the booking moved on concurrently.
	ErrStatusConflict = errors.New("booking status changed concurrently")
	// ErrRatingTaken is returned when the conditional rating write matched no
	// document: the booking is gone, not completed, or already rated.
	ErrRatingTaken = errors.New("booking rating already set")
	// ErrReputationConflict is returned when the worker reputation update
	// lost a concurrent race and the whole rating unit was rolled back.
	ErrReputationConflict = errors.New("worker reputation changed concurrently")
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// ListByClient returns a client's bookings ordered by date descending,
	// enriched with the service summary and the worker's contact fields.
	ListByClient(clientID string) ([]models.BookingView, error)
	// ListByWorker returns a worker's bookings ordered by date descending,
	// enriched with the service summary and the client's contact fields.
	ListByWorker(workerID string) ([]models.BookingView, error)
	// UpdateStatus moves a booking from one status to another. The write is
	// conditional on the current status; ErrStatusConflict signals the
	// booking was not in the expected status anymore.
	UpdateStatus(id string, from, to models.BookingStatus) error
	// Rate applies a one-time rating to a completed booking and folds the
	// score into the owning worker's reputation as a single logical unit.
	// Both writes are conditional; a lost race returns ErrRatingTaken or
	// ErrReputationConflict with no partial state left behind.
	Rate(ctx context.Context, booking *models.Booking, rating models.BookingRating) (*models.Worker, error)
}
