package user

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/utils"
)

// CreateUser registers a participant. Emails are unique after normalization.
func (s *DefaultUserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if strings.TrimSpace(req.UserName) == "" {
		return nil, utils.InvalidArgument("user_name_required", "User name is required", nil)
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, utils.InvalidArgument("email_required", "Email is required", nil)
	}

	u := &models.User{UserName: req.UserName, Email: req.Email}
	if err := s.Repo.Create(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, utils.Conflict("email_taken", "A user with this email already exists", err)
		}
		return nil, utils.Internal("failed to create user", err)
	}
	s.Logger.Info("user created", zap.String("userId", u.ID))
	return u, nil
}

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("user_not_found", "User not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to fetch user", err)
	}
	return u, nil
}
