// File: services/calendarimport/google.go
package calendarimport

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const googleMaxResults = 2500

// GoogleSource reads busy intervals from a Google Calendar using an access
// token the participant obtained in the browser.
type GoogleSource struct {
	svc        *calendar.Service
	calendarID string
}

// NewGoogleSource builds a source for the participant's primary calendar.
// Extra options are appended after the token source.
func NewGoogleSource(ctx context.Context, accessToken string, opts ...option.ClientOption) (*GoogleSource, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"})
	all := append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := calendar.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}
	return &GoogleSource{svc: svc, calendarID: "primary"}, nil
}

func (g *GoogleSource) Name() string { return "google" }

// Busy lists single (expanded) events in [from, to]. It issues exactly one
// request; results past the first page are not fetched.
func (g *GoogleSource) Busy(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	events, err := g.svc.Events.List(g.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		ShowDeleted(false).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(googleMaxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("google calendar events.list: %w", err)
	}

	out := make([]BusyInterval, 0, len(events.Items))
	for _, item := range events.Items {
		// All-day entries carry only Date and never block grid hours.
		if item.Status == "cancelled" || item.Start == nil || item.End == nil ||
			item.Start.DateTime == "" || item.End.DateTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			continue
		}
		out = append(out, BusyInterval{Start: start, End: end, Summary: item.Summary})
	}
	return out, nil
}
