package booking

import (
	"errors"
	"fmt"

	bookingRepo "worknook/database/repository/booking"
	"worknook/models"
	"worknook/utils"

	"go.uber.org/zap"
)

// Transition advances a booking through its lifecycle. The status write is
// conditional on the state the caller was validated against; a benign race
// (another request moved the booking first) is re-checked once before
// surfacing Conflict.
func (s *DefaultBookingService) Transition(bookingID string, p models.WorkerPrincipal, newStatus models.BookingStatus) (*models.Booking, error) {
	owner, err := s.ownerProfile(p)
	if err != nil {
		return nil, err
	}
	if !models.IsValidStatus(newStatus) {
		return nil, utils.InvalidTransition("Invalid status")
	}

	for attempt := 0; attempt < 2; attempt++ {
		b, err := s.getBooking(bookingID)
		if err != nil {
			return nil, err
		}
		if b.WorkerID != owner.ID {
			return nil, utils.Forbidden("Not authorized to update this booking")
		}
		if !models.CanTransition(b.Status, newStatus) {
			return nil, utils.InvalidTransition(
				fmt.Sprintf("Cannot transition booking from %s to %s", b.Status, newStatus))
		}

		err = s.Repo.UpdateStatus(b.ID, b.Status, newStatus)
		if err == nil {
			b.Status = newStatus
			utils.GetLogger().Info("Booking transitioned",
				zap.String("bookingID", b.ID), zap.String("status", string(newStatus)))
			return b, nil
		}
		if !errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, utils.Unexpected("failed to update booking status", err)
		}
		// Lost the race; re-read and re-validate once.
	}
	return nil, utils.Conflict("Booking was updated concurrently")
}
