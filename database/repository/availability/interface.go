// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"when3meet/database"
	"when3meet/models"
)

// AvailabilityRepository persists one availability record per (event, user).
type AvailabilityRepository interface {
	// Upsert atomically replaces the slot set of the (eventId, userId) record,
	// creating it on first submission.
	Upsert(ctx context.Context, a models.Availability) (*models.Availability, error)
	GetByID(ctx context.Context, id string) (*models.Availability, error)
	// ListByEvent returns the event's records, most recently modified first.
	ListByEvent(ctx context.Context, eventID string) ([]models.Availability, error)
	DeleteByEventAndUser(ctx context.Context, eventID, userID string) error
	DeleteByID(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoAvailabilityRepo struct {
	coll  *mongo.Collection
	now   func() time.Time
	newID func() string
}

// NewMongoAvailabilityRepo constructs the MongoDB-backed repository.
func NewMongoAvailabilityRepo(db *database.DB) AvailabilityRepository {
	return newRepo(db.Database.Collection("availabilities"))
}

func newRepo(coll *mongo.Collection) *mongoAvailabilityRepo {
	return &mongoAvailabilityRepo{
		coll:  coll,
		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}
