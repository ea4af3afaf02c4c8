package entity

import "time"

// Trip lifecycle status
const (
	TripUpcoming  = "upcoming"
	TripActive    = "active"
	TripCompleted = "completed"
)

// Trip is the slice of a user's trip the engine needs: ownership, a display
// name and the travel window. Full trip CRUD lives in the host application.
type Trip struct {
	ID          string    `bson:"_id,omitempty"`
	UserID      string    `bson:"userId"`
	Name        string    `bson:"name"`
	Destination string    `bson:"destination,omitempty"`
	StartDate   time.Time `bson:"startDate"`
	EndDate     time.Time `bson:"endDate"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}
