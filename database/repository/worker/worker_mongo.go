package workerRepo

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo creates a new instance of WorkerRepository using MongoDB.
func NewMongoWorkerRepo() WorkerRepository {
	coll := database.MongoClient.Database(config.AppConfig.DatabaseName).Collection("workers")
	return &MongoWorkerRepo{coll: coll}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWorkerRepo) Create(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, worker)
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

func (r *MongoWorkerRepo) GetByID(id string) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var worker models.Worker
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker with id %s: %w", id, err)
	}
	return &worker, nil
}

func (r *MongoWorkerRepo) GetByUserID(userID string) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var worker models.Worker
	filter := bson.M{"user_id": userID}
	if err := r.coll.FindOne(ctx, filter).Decode(&worker); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker for user %s: %w", userID, err)
	}
	return &worker, nil
}

func (r *MongoWorkerRepo) List(serviceType string) ([]models.Worker, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if serviceType != "" {
		filter["service_type"] = serviceType
	}
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	for cursor.Next(ctx) {
		var w models.Worker
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return workers, nil
}

func (r *MongoWorkerRepo) UpdateWithDocument(id string, updateDoc interface{}) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return fmt.Errorf("failed to update worker with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
