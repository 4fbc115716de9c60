package user

import (
	"context"

	"go.uber.org/zap"

	userRepo "when3meet/database/repository/user"
	"when3meet/models"
)

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

func NewService(repo userRepo.UserRepository, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Logger: logger}
}
