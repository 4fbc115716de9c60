package calendarimport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const feed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//when3meet//test//EN
BEGIN:VEVENT
UID:standup@test
DTSTAMP:20250301T000000Z
DTSTART:20250303T100000Z
DTEND:20250303T103000Z
RRULE:FREQ=DAILY;COUNT=10
EXDATE:20250311T100000Z
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:lunch@test
DTSTAMP:20250301T000000Z
DTSTART:20250310T120000Z
DTEND:20250310T130000Z
SUMMARY:Lunch
END:VEVENT
BEGIN:VEVENT
UID:offsite@test
DTSTAMP:20250301T000000Z
DTSTART;VALUE=DATE:20250310
DTEND;VALUE=DATE:20250311
SUMMARY:Offsite
END:VEVENT
BEGIN:VEVENT
UID:free@test
DTSTAMP:20250301T000000Z
DTSTART:20250310T150000Z
DTEND:20250310T160000Z
TRANSP:TRANSPARENT
SUMMARY:Focus
END:VEVENT
BEGIN:VEVENT
UID:old@test
DTSTAMP:20250301T000000Z
DTSTART:20250201T150000Z
DTEND:20250201T160000Z
SUMMARY:Old
END:VEVENT
END:VCALENDAR
`

func icsRange() (time.Time, time.Time) {
	return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 11, 23, 59, 59, 0, time.UTC)
}

func TestParseICS(t *testing.T) {
	from, to := icsRange()
	got, err := ParseICS([]byte(strings.ReplaceAll(feed, "\n", "\r\n")), from, to)
	if err != nil {
		t.Fatalf("ParseICS: %v", err)
	}

	summaries := map[string]int{}
	for _, iv := range got {
		summaries[iv.Summary]++
	}
	// Standup occurs on the 10th; the 11th is excluded by EXDATE.
	if summaries["Standup"] != 1 {
		t.Errorf("standup occurrences = %d, want 1 (%v)", summaries["Standup"], got)
	}
	if summaries["Lunch"] != 1 {
		t.Errorf("lunch occurrences = %d, want 1", summaries["Lunch"])
	}
	for _, skipped := range []string{"Offsite", "Focus", "Old"} {
		if summaries[skipped] != 0 {
			t.Errorf("%s should have been skipped", skipped)
		}
	}
}

func TestParseICSEmpty(t *testing.T) {
	from, to := icsRange()
	if _, err := ParseICS([]byte("  \n"), from, to); err == nil {
		t.Error("expected error for empty body")
	}
}

func TestICSSourceBusy(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(strings.ReplaceAll(feed, "\n", "\r\n")))
	}))
	defer srv.Close()

	from, to := icsRange()
	got, err := NewICSSource(srv.URL, srv.Client()).Busy(context.Background(), from, to)
	if err != nil {
		t.Fatalf("Busy: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d intervals, want 2", len(got))
	}
	if hits != 1 {
		t.Errorf("feed fetched %d times, want exactly 1", hits)
	}
}

func TestICSSourceHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	from, to := icsRange()
	if _, err := NewICSSource(srv.URL, srv.Client()).Busy(context.Background(), from, to); err == nil {
		t.Error("expected error for 403 feed")
	}
}

func TestICSSourceRejectsOversizedFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("BEGIN:VCALENDAR\r\n"))
		_, _ = w.Write(make([]byte, maxICSBytes))
	}))
	defer srv.Close()

	from, to := icsRange()
	_, err := NewICSSource(srv.URL, srv.Client()).Busy(context.Background(), from, to)
	if !errors.Is(err, ErrFeedTooLarge) {
		t.Errorf("err = %v, want ErrFeedTooLarge", err)
	}
}
