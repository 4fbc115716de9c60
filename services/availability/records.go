package availability

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/utils"
)

var errRecordNotFound = utils.NotFound("availability_not_found", "Availability not found")

// ListForEvent returns the event's records, most recently modified first,
// with each participant resolved to a public profile.
func (s *DefaultAvailabilityService) ListForEvent(ctx context.Context, eventID string) ([]models.AvailabilityView, error) {
	if _, err := s.Events.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	records, err := s.Repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, utils.Internal("failed to fetch availabilities", err)
	}

	ids := make([]string, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if !seen[r.UserID] {
			seen[r.UserID] = true
			ids = append(ids, r.UserID)
		}
	}
	profiles, err := s.Profiles.GetProfiles(ctx, ids)
	if err != nil {
		return nil, utils.Internal("failed to resolve users", err)
	}

	views := make([]models.AvailabilityView, 0, len(records))
	for _, r := range records {
		views = append(views, models.NewAvailabilityView(r, profileOf(profiles, r.UserID)))
	}
	return views, nil
}

// GetRecord looks up a single record by its own ID.
func (s *DefaultAvailabilityService) GetRecord(ctx context.Context, recordID string) (*models.AvailabilityView, error) {
	record, err := s.Repo.GetByID(ctx, recordID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errRecordNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to fetch availability", err)
	}

	profiles, err := s.Profiles.GetProfiles(ctx, []string{record.UserID})
	if err != nil {
		return nil, utils.Internal("failed to resolve user", err)
	}
	view := models.NewAvailabilityView(*record, profileOf(profiles, record.UserID))
	return &view, nil
}

func (s *DefaultAvailabilityService) DeleteRecord(ctx context.Context, eventID, userID string) error {
	if err := s.Repo.DeleteByEventAndUser(ctx, eventID, userID); err != nil {
		return mapDeleteError(err)
	}
	s.invalidate(ctx, eventID)
	s.Logger.Info("availability deleted", zap.String("eventId", eventID), zap.String("userId", userID))
	return nil
}

func (s *DefaultAvailabilityService) DeleteRecordByID(ctx context.Context, recordID string) error {
	record, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		return mapDeleteError(err)
	}
	if err := s.Repo.DeleteByID(ctx, recordID); err != nil {
		return mapDeleteError(err)
	}
	s.invalidate(ctx, record.EventID)
	s.Logger.Info("availability deleted", zap.String("availabilityId", recordID), zap.String("eventId", record.EventID))
	return nil
}

func mapDeleteError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errRecordNotFound
	}
	return utils.Internal("failed to delete availability", err)
}

// profileOf falls back to a bare ID when the user has since been removed.
func profileOf(profiles map[string]models.PublicProfile, userID string) models.PublicProfile {
	if p, ok := profiles[userID]; ok {
		return p
	}
	return models.PublicProfile{ID: userID}
}
