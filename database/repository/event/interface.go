// File: database/repository/event/interface.go
package eventRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"when3meet/database"
	"when3meet/models"
)

// EventRepository is the read/create surface of the events collection.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoEventRepo struct {
	coll *mongo.Collection
}

// NewMongoEventRepo constructs a new MongoDB EventRepository.
func NewMongoEventRepo(db *database.DB) EventRepository {
	return &mongoEventRepo{coll: db.Database.Collection("events")}
}
