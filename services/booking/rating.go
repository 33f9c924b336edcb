package booking

import (
	"context"
	"errors"
	"math"
	"time"

	bookingRepo "worknook/database/repository/booking"
	"worknook/models"
	"worknook/utils"

	"go.uber.org/zap"
)

// Rate attaches a one-time rating to a completed booking and folds the score
// into the owning worker's reputation. The storage layer applies both writes
// as one unit built from conditional updates; a lost reputation race is
// retried once, a lost rating race surfaces as AlreadyRated or Conflict.
func (s *DefaultBookingService) Rate(bookingID string, p models.ClientPrincipal, input RateInput) (*models.Booking, error) {
	for attempt := 0; attempt < 2; attempt++ {
		b, err := s.getBooking(bookingID)
		if err != nil {
			return nil, err
		}
		if b.ClientID != p.ID {
			return nil, utils.Forbidden("Not authorized to rate this booking")
		}
		if math.IsNaN(input.Score) || math.IsInf(input.Score, 0) || input.Score < 1 || input.Score > 5 {
			return nil, utils.InvalidInput("Rating must be between 1 and 5")
		}
		if b.Status != models.StatusCompleted {
			return nil, utils.InvalidState("Can only rate completed bookings")
		}
		if b.Rating != nil {
			return nil, utils.AlreadyRated("Booking already rated")
		}

		rating := models.BookingRating{Score: input.Score, Comment: input.Comment}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		worker, err := s.Repo.Rate(ctx, b, rating)
		cancel()
		if err == nil {
			b.Rating = &rating
			utils.GetLogger().Info("Booking rated",
				zap.String("bookingID", b.ID),
				zap.String("workerID", worker.ID),
				zap.Float64("score", rating.Score),
				zap.Float64("workerRating", worker.Rating),
				zap.Int("totalRatings", worker.TotalRatings))
			return b, nil
		}

		switch {
		case errors.Is(err, bookingRepo.ErrRatingTaken):
			// A concurrent rater may have won, or the state drifted since the
			// read. Re-read: the next iteration reports the precise failure.
		case errors.Is(err, bookingRepo.ErrReputationConflict):
			// Another booking's rating landed on the worker first. The whole
			// unit was rolled back, so a retry is safe.
		default:
			return nil, utils.Unexpected("failed to apply rating", err)
		}
	}
	return nil, utils.Conflict("Rating lost a concurrent update; please retry")
}
