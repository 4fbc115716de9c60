// File: services/calendarimport/ics.go
package calendarimport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

const maxICSBytes = 8 << 20

var ErrFeedTooLarge = fmt.Errorf("ics feed exceeds %d bytes", maxICSBytes)

// ICSSource reads busy intervals from an iCalendar feed URL.
type ICSSource struct {
	URL    string
	Client *http.Client
}

func NewICSSource(url string, client *http.Client) *ICSSource {
	if client == nil {
		client = NewFeedClient(15 * time.Second)
	}
	return &ICSSource{URL: url, Client: client}
}

func (s *ICSSource) Name() string { return "ics" }

// Busy fetches the feed once and returns the timed occurrences overlapping
// [from, to], with recurring events expanded.
func (s *ICSSource) Busy(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/calendar")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ics fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ics fetch: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxICSBytes+1))
	if err != nil {
		return nil, fmt.Errorf("ics read: %w", err)
	}
	if len(body) > maxICSBytes {
		return nil, fmt.Errorf("ics read: %w", ErrFeedTooLarge)
	}
	return ParseICS(body, from, to)
}

// ParseICS extracts busy intervals overlapping [from, to] from an ICS payload.
// All-day, cancelled and transparent events are skipped.
func ParseICS(body []byte, from, to time.Time) ([]BusyInterval, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty ICS body")
	}
	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ics parse: %w", err)
	}

	overridden := make(map[string][]time.Time)
	for _, ev := range cal.Events() {
		rid := ev.GetProperty(ical.ComponentProperty("RECURRENCE-ID"))
		if rid == nil {
			continue
		}
		if t, err := parseICSTime(strings.TrimSpace(rid.Value), tzidOf(rid), time.UTC); err == nil {
			uid := propValue(ev, ical.ComponentPropertyUniqueId)
			overridden[uid] = append(overridden[uid], t)
		}
	}

	var out []BusyInterval
	for _, ev := range cal.Events() {
		if isAllDay(ev) || strings.EqualFold(propValue(ev, ical.ComponentPropertyStatus), "CANCELLED") ||
			strings.EqualFold(propValue(ev, ical.ComponentPropertyTransp), "TRANSPARENT") {
			continue
		}
		// Overridden instances are reported through their own VEVENT.
		if ev.GetProperty(ical.ComponentProperty("RECURRENCE-ID")) != nil {
			if start, end, ok := eventSpan(ev); ok && overlaps(start, end, from, to) {
				out = append(out, BusyInterval{Start: start, End: end, Summary: propValue(ev, ical.ComponentPropertySummary)})
			}
			continue
		}

		start, end, ok := eventSpan(ev)
		if !ok {
			continue
		}
		summary := propValue(ev, ical.ComponentPropertySummary)

		rule := propValue(ev, ical.ComponentPropertyRrule)
		if rule == "" {
			if overlaps(start, end, from, to) {
				out = append(out, BusyInterval{Start: start, End: end, Summary: summary})
			}
			continue
		}

		occurrences, err := expand(ev, rule, start, end.Sub(start), from, to, overridden[propValue(ev, ical.ComponentPropertyUniqueId)])
		if err != nil {
			continue
		}
		for _, occ := range occurrences {
			out = append(out, BusyInterval{Start: occ, End: occ.Add(end.Sub(start)), Summary: summary})
		}
	}
	return out, nil
}

func eventSpan(ev *ical.VEvent) (time.Time, time.Time, bool) {
	start, err := ev.GetStartAt()
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := ev.GetEndAt()
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func expand(ev *ical.VEvent, rule string, start time.Time, dur time.Duration, from, to time.Time, skip []time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, err
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, t := range skip {
		set.ExDate(t)
	}
	for _, p := range ev.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(strings.TrimSpace(part), tzidOf(p), start.Location()); err == nil {
				set.ExDate(t)
			}
		}
	}
	return set.Between(from.Add(-dur), to, true), nil
}

func isAllDay(ev *ical.VEvent) bool {
	p := ev.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

func propValue(ev *ical.VEvent, name ical.ComponentProperty) string {
	if p := ev.GetProperty(name); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}

func tzidOf(p *ical.IANAProperty) string {
	if vs, ok := p.ICalParameters["TZID"]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}

func overlaps(start, end, from, to time.Time) bool {
	return start.Before(to) && end.After(from)
}

// parseICSTime handles the basic DATE-TIME forms used by EXDATE and
// RECURRENCE-ID.
func parseICSTime(v, tzid string, fallback *time.Location) (time.Time, error) {
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	loc := fallback
	if tzid != "" {
		if l, err := time.LoadLocation(tzid); err == nil {
			loc = l
		}
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, loc)
	}
	return time.ParseInLocation("20060102", v, loc)
}
