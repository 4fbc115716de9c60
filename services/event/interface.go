package event

import (
	"context"

	"go.uber.org/zap"

	eventRepo "when3meet/database/repository/event"
	"when3meet/models"
)

type EventService interface {
	CreateEvent(ctx context.Context, req models.CreateEventRequest) (*models.Event, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
}

// CreatorResolver confirms that an event's creator is a known user.
type CreatorResolver interface {
	GetProfiles(ctx context.Context, ids []string) (map[string]models.PublicProfile, error)
}

// DefaultEventService is the production implementation.
type DefaultEventService struct {
	Repo   eventRepo.EventRepository
	Users  CreatorResolver
	Logger *zap.Logger
}

func NewService(repo eventRepo.EventRepository, users CreatorResolver, logger *zap.Logger) *DefaultEventService {
	return &DefaultEventService{Repo: repo, Users: users, Logger: logger}
}
