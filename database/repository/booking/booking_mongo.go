package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worknook/config"
	"worknook/database"
	"worknook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB. It also holds
// the workers collection so the rating unit of work can update both
// documents inside one transaction.
type MongoBookingRepo struct {
	coll       *mongo.Collection
	workerColl *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoBookingRepo{
		coll:       db.Collection("bookings"),
		workerColl: db.Collection("workers"),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return &booking, nil
}

// lookupStage joins a single foreign document under the given field.
func lookupStage(from, localField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   localField,
			"foreignField": "id",
			"as":           as,
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$" + as,
			"preserveNullAndEmptyArrays": true,
		}}},
	}
}

func (r *MongoBookingRepo) aggregateViews(pipeline mongo.Pipeline) ([]models.BookingView, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("booking aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var views []models.BookingView
	for cursor.Next(ctx) {
		var v models.BookingView
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode booking view: %w", err)
		}
		views = append(views, v)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return views, nil
}

func (r *MongoBookingRepo) ListByClient(clientID string) ([]models.BookingView, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"client_id": clientID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}
	pipeline = append(pipeline, lookupStage("services", "service_id", "service")...)
	// The client's counterpart is the account behind the worker profile.
	pipeline = append(pipeline, lookupStage("workers", "worker_id", "worker_doc")...)
	pipeline = append(pipeline, lookupStage("users", "worker_doc.user_id", "counterpart")...)
	pipeline = append(pipeline, bson.D{{Key: "$unset", Value: "worker_doc"}})
	return r.aggregateViews(pipeline)
}

func (r *MongoBookingRepo) ListByWorker(workerID string) ([]models.BookingView, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"worker_id": workerID}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}}}},
	}
	pipeline = append(pipeline, lookupStage("services", "service_id", "service")...)
	pipeline = append(pipeline, lookupStage("users", "client_id", "counterpart")...)
	return r.aggregateViews(pipeline)
}

func (r *MongoBookingRepo) UpdateStatus(id string, from, to models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status of booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}
