// internal/interface/repository/notification_repo.go
package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepository implements the NotificationRepository interface
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoDB notification repository
func NewMongoNotificationRepository(db *mongo.Database) repository.NotificationRepository {
	collection := db.Collection("notifications")

	ctx := context.Background()

	// Compound index backing the dedup lookback query
	dedupIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "bookingId", Value: 1},
			{Key: "category", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}

	// Index on createdAt for the user-facing feed
	createdAtIndex := mongo.IndexModel{
		Keys: bson.M{"createdAt": -1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		dedupIndex,
		createdAtIndex,
	})

	return &MongoNotificationRepository{
		collection: collection,
	}
}

// Create inserts a notification. Notifications are append-only from the
// engine's side.
func (r *MongoNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		notification.ID = primitive.NewObjectID().Hex()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// FindRecent returns notifications for the same (user, booking, category)
// created within the lookback span, newest first.
func (r *MongoNotificationRepository) FindRecent(ctx context.Context, userID, bookingID string, category entity.NotificationCategory, lookback time.Duration) ([]*entity.Notification, error) {
	since := time.Now().UTC().Add(-lookback)
	filter := bson.M{
		"userId":    userID,
		"bookingId": bookingID,
		"category":  category,
		"createdAt": bson.M{"$gte": since},
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*entity.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
