// File: services/heatmap/service.go
package heatmap

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"when3meet/models"
	"when3meet/services/slotgrid"
	"when3meet/utils"
)

type EventReader interface {
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
}

type ResponseLister interface {
	ListForEvent(ctx context.Context, eventID string) ([]models.AvailabilityView, error)
}

// Service serves heatmap snapshots, reading through the cache.
type Service struct {
	Events    EventReader
	Responses ResponseLister
	Cache     Cache
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewService(events EventReader, responses ResponseLister, cache Cache, logger *zap.Logger) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{Events: events, Responses: responses, Cache: cache, Logger: logger, Now: time.Now}
}

// Snapshot returns the current heatmap of an event.
func (s *Service) Snapshot(ctx context.Context, eventID string) (*Snapshot, error) {
	if cached, err := s.Cache.Get(ctx, eventID); err != nil {
		s.Logger.Warn("heatmap cache read failed", zap.String("eventId", eventID), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}
	// Read before the records so a write landing mid-build is detected.
	generation, genErr := s.Cache.Generation(ctx, eventID)
	if genErr != nil {
		s.Logger.Warn("heatmap cache generation read failed", zap.String("eventId", eventID), zap.Error(genErr))
	}

	var (
		event *models.Event
		views []models.AvailabilityView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		event, err = s.Events.GetEvent(gctx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		views, err = s.Responses.ListForEvent(gctx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	w, err := event.SlotWindow()
	if err != nil {
		return nil, utils.Internal("stored event has an invalid window", err)
	}

	snap := Build(eventID, w, ToResponses(views), s.Now())
	if genErr == nil {
		if err := s.Cache.Set(ctx, &snap, generation); err != nil {
			s.Logger.Warn("heatmap cache write failed", zap.String("eventId", eventID), zap.Error(err))
		}
	}
	return &snap, nil
}

// ToResponses converts stored records into aggregator input, keeping order.
func ToResponses(views []models.AvailabilityView) []Response {
	out := make([]Response, 0, len(views))
	for _, v := range views {
		name := v.User.UserName
		if name == "" {
			name = v.User.Email
		}
		out = append(out, Response{Name: name, Slots: slotgrid.FromDays(v.Slots)})
	}
	return out
}
