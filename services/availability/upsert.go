package availability

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/services/slotgrid"
	"when3meet/utils"
)

// Upsert replaces the participant's whole slot set for the event, creating the
// record on first submission. Checks run in a fixed order: the userId itself,
// then the event, then the user, then the slots.
func (s *DefaultAvailabilityService) Upsert(ctx context.Context, eventID string, req models.UpsertAvailabilityRequest) (*models.AvailabilityView, error) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		return nil, utils.InvalidArgument("user_id_required", "User ID is required", nil)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, utils.InvalidArgument("user_id_invalid", "Invalid user ID", err)
	}

	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	profiles, err := s.Profiles.GetProfiles(ctx, []string{userID})
	if err != nil {
		return nil, utils.Internal("failed to resolve user", err)
	}
	profile, ok := profiles[userID]
	if !ok {
		return nil, utils.InvalidArgument("user_not_found", "User not found", nil)
	}

	tz := strings.TrimSpace(req.TimeZone)
	if tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, utils.InvalidArgument("time_zone_invalid", "Unknown time zone", err)
		}
	}

	w, err := event.SlotWindow()
	if err != nil {
		return nil, utils.Internal("stored event has an invalid window", err)
	}
	set, err := slotgrid.DecodeDays(w, req.Slots)
	if err != nil {
		return nil, utils.InvalidArgument("slots_out_of_grid", err.Error(), err)
	}

	stored, err := s.Repo.Upsert(ctx, models.Availability{
		EventID:  event.ID,
		UserID:   userID,
		TimeZone: tz,
		Slots:    slotgrid.EncodeDays(w, set),
	})
	if err != nil {
		return nil, utils.Internal("failed to save availability", err)
	}

	s.invalidate(ctx, event.ID)
	s.Logger.Info("availability saved",
		zap.String("eventId", event.ID),
		zap.String("userId", userID),
		zap.Int("slots", set.Len()),
	)

	view := models.NewAvailabilityView(*stored, profile)
	return &view, nil
}

func (s *DefaultAvailabilityService) invalidate(ctx context.Context, eventID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, eventID); err != nil {
		s.Logger.Warn("heatmap cache invalidation failed", zap.String("eventId", eventID), zap.Error(err))
	}
}
