package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"worknook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Rate writes the booking rating and the worker reputation recompute as one
// transaction. Each write is a conditional single-document update, so two
// concurrent raters cannot both pass the "not already rated" check, and two
// ratings landing on the same worker from different bookings cannot lose an
// increment.
func (r *MongoBookingRepo) Rate(ctx context.Context, booking *models.Booking, rating models.BookingRating) (*models.Worker, error) {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	var updated models.Worker

	txnFn := func(sc mongo.SessionContext) error {
		// Set the rating only where it is still unset and the booking is
		// completed. Matching nothing means a concurrent rater won.
		filter := bson.M{
			"id":     booking.ID,
			"status": models.StatusCompleted,
			"rating": nil,
		}
		res, err := r.coll.UpdateOne(sc, filter, bson.M{"$set": bson.M{"rating": rating}})
		if err != nil {
			return fmt.Errorf("rating write failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrRatingTaken
		}

		var worker models.Worker
		if err := r.workerColl.FindOne(sc, bson.M{"id": booking.WorkerID}).Decode(&worker); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return fmt.Errorf("worker %s not found for rated booking %s", booking.WorkerID, booking.ID)
			}
			return fmt.Errorf("failed to fetch worker %s: %w", booking.WorkerID, err)
		}

		next := worker.NextRating(rating.Score)
		// Conditional on the observed count so a concurrent rating from
		// another booking cannot be folded over.
		workerFilter := bson.M{"id": worker.ID, "total_ratings": worker.TotalRatings}
		workerUpdate := bson.M{"$set": bson.M{
			"rating":        next,
			"total_ratings": worker.TotalRatings + 1,
		}}
		wres, err := r.workerColl.UpdateOne(sc, workerFilter, workerUpdate)
		if err != nil {
			return fmt.Errorf("reputation write failed: %w", err)
		}
		if wres.MatchedCount == 0 {
			return ErrReputationConflict
		}

		updated = worker
		updated.Rating = next
		updated.TotalRatings = worker.TotalRatings + 1
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrRatingTaken) || errors.Is(err, ErrReputationConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("rating transaction failed: %w", err)
	}

	return &updated, nil
}
