package userRepo

import (
	"context"

	"when3meet/models"
)

// UserRepository defines methods for participant data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its normalized email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetProfiles resolves many user IDs to public profiles in one query.
	// IDs with no matching user are absent from the result.
	GetProfiles(ctx context.Context, ids []string) (map[string]models.PublicProfile, error)
	EnsureIndexes(ctx context.Context) error
}
