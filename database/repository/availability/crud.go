// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"when3meet/models"
)

const (
	schemaVersion = 1
	// Two upserts racing on a fresh (eventId, userId) pair can both attempt the
	// insert; the loser sees a duplicate key error and retries as an update.
	maxUpsertAttempts = 3
)

func (r *mongoAvailabilityRepo) Upsert(ctx context.Context, a models.Availability) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := r.now()
	filter := bson.M{"eventId": a.EventID, "userId": a.UserID}
	update := bson.M{
		"$set": bson.M{
			"slots":         a.Slots,
			"timeZone":      a.TimeZone,
			"schemaVersion": schemaVersion,
			"updatedAt":     now,
		},
		"$setOnInsert": bson.M{
			"id":        r.newID(),
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored models.Availability
	err := retryOnDuplicateKey(maxUpsertAttempts, func() error {
		return r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert availability: %w", err)
	}
	return &stored, nil
}

// retryOnDuplicateKey runs op until it succeeds, fails with anything other
// than a duplicate key error, or the attempts are used up.
func retryOnDuplicateKey(attempts int, op func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil || !mongo.IsDuplicateKeyError(err) {
			return err
		}
	}
	return err
}

func (r *mongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Availability
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *mongoAvailabilityRepo) ListByEvent(ctx context.Context, eventID string) ([]models.Availability, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"eventId": eventID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availabilities: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.Availability{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("error decoding availabilities: %w", err)
	}
	return records, nil
}

func (r *mongoAvailabilityRepo) DeleteByEventAndUser(ctx context.Context, eventID, userID string) error {
	return r.deleteOne(ctx, bson.M{"eventId": eventID, "userId": userID})
}

func (r *mongoAvailabilityRepo) DeleteByID(ctx context.Context, id string) error {
	return r.deleteOne(ctx, bson.M{"id": id})
}

func (r *mongoAvailabilityRepo) deleteOne(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
