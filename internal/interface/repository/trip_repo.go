// internal/interface/repository/trip_repo.go
package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTripRepository implements the TripRepository interface
type MongoTripRepository struct {
	collection *mongo.Collection
}

// NewMongoTripRepository creates a new MongoDB trip repository
func NewMongoTripRepository(db *mongo.Database) repository.TripRepository {
	collection := db.Collection("trips")

	ctx := context.Background()
	statusIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "startDate", Value: 1},
		},
	}
	collection.Indexes().CreateOne(ctx, statusIndex)

	return &MongoTripRepository{
		collection: collection,
	}
}

// ListActiveAndUpcoming returns every trip currently underway or not yet
// started, across all users.
func (r *MongoTripRepository) ListActiveAndUpcoming(ctx context.Context) ([]*entity.Trip, error) {
	filter := bson.M{
		"status": bson.M{"$in": []string{entity.TripActive, entity.TripUpcoming}},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []*entity.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}
