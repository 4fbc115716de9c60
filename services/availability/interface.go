package availability

import (
	"context"

	"go.uber.org/zap"

	availabilityRepo "when3meet/database/repository/availability"
	"when3meet/models"
)

// AvailabilityService owns the per-participant availability records of events.
type AvailabilityService interface {
	Upsert(ctx context.Context, eventID string, req models.UpsertAvailabilityRequest) (*models.AvailabilityView, error)
	ListForEvent(ctx context.Context, eventID string) ([]models.AvailabilityView, error)
	GetRecord(ctx context.Context, recordID string) (*models.AvailabilityView, error)
	DeleteRecord(ctx context.Context, eventID, userID string) error
	DeleteRecordByID(ctx context.Context, recordID string) error
}

// EventReader is the read-only view of events this package needs.
type EventReader interface {
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
}

// ProfileResolver maps user IDs to public profiles. Unknown IDs are absent
// from the returned map.
type ProfileResolver interface {
	GetProfiles(ctx context.Context, ids []string) (map[string]models.PublicProfile, error)
}

// Invalidator drops derived data for an event after its records change.
type Invalidator interface {
	Invalidate(ctx context.Context, eventID string) error
}

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Repo     availabilityRepo.AvailabilityRepository
	Events   EventReader
	Profiles ProfileResolver
	Cache    Invalidator
	Logger   *zap.Logger
}

func NewService(repo availabilityRepo.AvailabilityRepository, events EventReader, profiles ProfileResolver, cache Invalidator, logger *zap.Logger) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Repo:     repo,
		Events:   events,
		Profiles: profiles,
		Cache:    cache,
		Logger:   logger,
	}
}
