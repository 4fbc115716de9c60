package userRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"when3meet/database"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo(db *database.DB) UserRepository {
	return &MongoUserRepo{coll: db.Database.Collection("users")}
}
