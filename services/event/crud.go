package event

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/utils"
)

const schemaVersion = 1

// CreateEvent validates the window and stores a new event with a fresh admin
// token. The token is only ever returned from this call.
func (s *DefaultEventService) CreateEvent(ctx context.Context, req models.CreateEventRequest) (*models.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, utils.InvalidArgument("title_required", "Title is required", nil)
	}
	creatorID := strings.TrimSpace(req.CreatorID)
	if _, err := uuid.Parse(creatorID); err != nil {
		return nil, utils.InvalidArgument("creator_id_invalid", "Invalid creator ID", err)
	}

	now := time.Now().UTC()
	ev := &models.Event{
		ID:            uuid.New().String(),
		Title:         title,
		Description:   strings.TrimSpace(req.Description),
		CreatorID:     creatorID,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		SelectedDays:  req.SelectedDays,
		Month:         req.Month,
		Year:          req.Year,
		TimeZone:      strings.TrimSpace(req.TimeZone),
		AdminToken:    uuid.New().String(),
		IsPublic:      true,
		SchemaVersion: schemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	w, err := ev.SlotWindow()
	if err != nil {
		return nil, utils.InvalidArgument("event_window_invalid", err.Error(), err)
	}
	ev.Window.Start, ev.Window.End = w.Bounds()

	profiles, err := s.Users.GetProfiles(ctx, []string{creatorID})
	if err != nil {
		return nil, utils.Internal("failed to resolve creator", err)
	}
	if _, ok := profiles[creatorID]; !ok {
		return nil, utils.InvalidArgument("creator_not_found", "Creator not found", nil)
	}

	if err := s.Repo.Create(ctx, ev); err != nil {
		return nil, utils.Internal("failed to create event", err)
	}
	s.Logger.Info("event created",
		zap.String("eventId", ev.ID),
		zap.String("creatorId", creatorID),
		zap.Int("days", len(ev.SelectedDays)),
		zap.Int("slotsPerDay", w.TotalSlots()),
	)
	return ev, nil
}

func (s *DefaultEventService) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	ev, err := s.Repo.GetByID(ctx, eventID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.NotFound("event_not_found", "Event not found")
	}
	if err != nil {
		return nil, utils.Internal("failed to fetch event", err)
	}
	return ev, nil
}

// IsAdmin reports whether token is the event's admin token.
func IsAdmin(ev *models.Event, token string) bool {
	if token == "" || ev.AdminToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(ev.AdminToken), []byte(token)) == 1
}
