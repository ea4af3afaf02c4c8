// internal/interface/repository/booking_repo.go
package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepository implements the BookingRepository interface
type MongoBookingRepository struct {
	collection *mongo.Collection
}

// NewMongoBookingRepository creates a new MongoDB booking repository
func NewMongoBookingRepository(db *mongo.Database) repository.BookingRepository {
	collection := db.Collection("bookings")

	// Create indexes for the scheduler's sweep queries
	ctx := context.Background()

	userDateIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userId", Value: 1},
			{Key: "date", Value: 1},
		},
	}

	categoryDateIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "date", Value: 1},
		},
	}

	tripIndex := mongo.IndexModel{
		Keys: bson.M{"tripId": 1},
	}

	collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		userDateIndex,
		categoryDateIndex,
		tripIndex,
	})

	return &MongoBookingRepository{
		collection: collection,
	}
}

// ListDueForReminder returns a user's confirmed bookings starting within the
// given number of days.
func (r *MongoBookingRepository) ListDueForReminder(ctx context.Context, userID string, withinDays int) ([]*entity.Booking, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"userId": userID,
		"status": entity.BookingConfirmed,
		"date": bson.M{
			"$gte": startOfDay(now),
			"$lte": now.AddDate(0, 0, withinDays),
		},
	}
	return r.find(ctx, filter)
}

// ListFlightBookings returns a user's confirmed flight bookings departing
// within the given number of hours.
func (r *MongoBookingRepository) ListFlightBookings(ctx context.Context, userID string, withinHours int) ([]*entity.Booking, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"userId":   userID,
		"category": entity.CategoryFlight,
		"status":   entity.BookingConfirmed,
		"date": bson.M{
			"$gte": startOfDay(now),
			"$lte": now.Add(time.Duration(withinHours) * time.Hour),
		},
	}
	return r.find(ctx, filter)
}

// ListGeocodedActivities returns a trip's activity bookings that carry
// coordinates and start within the given number of days.
func (r *MongoBookingRepository) ListGeocodedActivities(ctx context.Context, tripID string, withinDays int) ([]*entity.Booking, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"tripId":            tripID,
		"category":          entity.CategoryActivity,
		"status":            entity.BookingConfirmed,
		"details.latitude":  bson.M{"$ne": nil},
		"details.longitude": bson.M{"$ne": nil},
		"date": bson.M{
			"$gte": startOfDay(now),
			"$lte": now.AddDate(0, 0, withinDays),
		},
	}
	return r.find(ctx, filter)
}

// ListUserIDsWithUpcoming returns the distinct users holding confirmed
// bookings within the given number of days.
func (r *MongoBookingRepository) ListUserIDsWithUpcoming(ctx context.Context, withinDays int) ([]string, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"status": entity.BookingConfirmed,
		"date": bson.M{
			"$gte": startOfDay(now),
			"$lte": now.AddDate(0, 0, withinDays),
		},
	}
	return r.distinctUserIDs(ctx, filter)
}

// ListUserIDsWithFlights returns the distinct users holding confirmed flight
// bookings within the given number of hours.
func (r *MongoBookingRepository) ListUserIDsWithFlights(ctx context.Context, withinHours int) ([]string, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"category": entity.CategoryFlight,
		"status":   entity.BookingConfirmed,
		"date": bson.M{
			"$gte": startOfDay(now),
			"$lte": now.Add(time.Duration(withinHours) * time.Hour),
		},
	}
	return r.distinctUserIDs(ctx, filter)
}

// UpdateDetails writes the last-observed gate/terminal/delay back onto a
// booking. This is the engine's only booking write.
func (r *MongoBookingRepository) UpdateDetails(ctx context.Context, bookingID, userID string, update repository.BookingDetailsUpdate) error {
	set := bson.M{
		"details.lastCheckedAt":    update.LastCheckedAt,
		"details.lastDelayMinutes": update.LastDelayMinutes,
		"updatedAt":                time.Now().UTC(),
	}
	if update.Gate != "" {
		set["details.gate"] = update.Gate
	}
	if update.Terminal != "" {
		set["details.terminal"] = update.Terminal
	}

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": bookingID, "userId": userID},
		bson.M{"$set": set},
	)
	return err
}

func (r *MongoBookingRepository) find(ctx context.Context, filter bson.M) ([]*entity.Booking, error) {
	opts := options.Find().SetSort(bson.M{"date": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []*entity.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepository) distinctUserIDs(ctx context.Context, filter bson.M) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "userId", filter)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			userIDs = append(userIDs, id)
		}
	}
	return userIDs, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
