// File: services/calendarimport/service.go
package calendarimport

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"

	"when3meet/models"
	"when3meet/services/slotgrid"
	"when3meet/utils"
)

// Source is an external calendar. Busy is called at most once per import and
// is never retried.
type Source interface {
	Name() string
	Busy(ctx context.Context, from, to time.Time) ([]BusyInterval, error)
}

type EventReader interface {
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
}

// Result is a successful import, shaped like the event grid.
type Result struct {
	Status     string   `json:"status"`
	Source     string   `json:"source"`
	EventCount int      `json:"eventCount"`
	Free       [][]bool `json:"free"`
}

const StatusImported = "imported"

// Import asks the source for busy time over the grid's days and converts it
// to a free-slot matrix. A failed call and an empty answer are both reported
// as ExternalUnavailable, with distinct reasons, instead of an all-free grid.
func Import(ctx context.Context, w slotgrid.Window, src Source) (*Result, error) {
	first, last := w.Bounds()
	from := time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, w.Location)
	to := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, int(999*time.Millisecond), w.Location)

	intervals, err := src.Busy(ctx, from, to)
	if errors.Is(err, ErrBlockedAddress) {
		return nil, utils.InvalidArgument("ics_url_blocked", "url must point to a public address", err)
	}
	if err != nil {
		return nil, utils.ExternalUnavailable("calendar_unavailable", "Calendar import failed. Please try again.", err)
	}
	if len(intervals) == 0 {
		return nil, utils.ExternalUnavailable("calendar_empty", "No events found in your calendar for the selected dates.", nil)
	}
	return &Result{
		Status:     StatusImported,
		Source:     src.Name(),
		EventCount: len(intervals),
		Free:       FreeMatrix(w, intervals),
	}, nil
}

// Service resolves the event and the external source for an import request.
type Service struct {
	Events        EventReader
	Logger        *zap.Logger
	Timeout       time.Duration
	// HTTPClient fetches ICS feeds. NewService sets one that refuses
	// loopback, private and link-local addresses.
	HTTPClient    *http.Client
	GoogleOptions []option.ClientOption
}

func NewService(events EventReader, logger *zap.Logger, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Service{
		Events:     events,
		Logger:     logger,
		Timeout:    timeout,
		HTTPClient: NewFeedClient(timeout),
	}
}

// FromGoogle imports the participant's primary Google Calendar.
func (s *Service) FromGoogle(ctx context.Context, eventID, accessToken string) (*Result, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, utils.InvalidArgument("access_token_required", "accessToken is required", nil)
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	src, err := NewGoogleSource(ctx, accessToken, s.GoogleOptions...)
	if err != nil {
		return nil, utils.ExternalUnavailable("calendar_unavailable", "Calendar import failed. Please try again.", err)
	}
	return s.run(ctx, eventID, src)
}

// FromICS imports an iCalendar feed.
func (s *Service) FromICS(ctx context.Context, eventID, feedURL string) (*Result, error) {
	u, err := url.Parse(strings.TrimSpace(feedURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https" && u.Scheme != "webcal") || u.Host == "" {
		return nil, utils.InvalidArgument("ics_url_invalid", "url must be an http(s) or webcal address", err)
	}
	if u.Scheme == "webcal" {
		u.Scheme = "https"
	}
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	return s.run(ctx, eventID, NewICSSource(u.String(), s.HTTPClient))
}

func (s *Service) run(ctx context.Context, eventID string, src Source) (*Result, error) {
	event, err := s.Events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	w, err := event.SlotWindow()
	if err != nil {
		return nil, utils.Internal("stored event has an invalid window", err)
	}

	res, err := Import(ctx, w, src)
	if err != nil {
		s.Logger.Warn("calendar import failed",
			zap.String("eventId", eventID),
			zap.String("source", src.Name()),
			zap.Error(err),
		)
		return nil, err
	}
	s.Logger.Info("calendar imported",
		zap.String("eventId", eventID),
		zap.String("source", src.Name()),
		zap.Int("events", res.EventCount),
	)
	return res, nil
}
