// File: services/slotgrid/window.go
package slotgrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotsPerHour is the number of 15-minute slots in one hour of the grid.
const SlotsPerHour = 4

// SlotMinutes is the width of a single slot.
const SlotMinutes = 60 / SlotsPerHour

var (
	ErrInvalidWindow = errors.New("invalid event window")
	ErrOutOfRange    = errors.New("slot coordinate out of range")
)

// Window is the immutable slot geometry of an event.
type Window struct {
	SelectedDays []int
	Month        time.Month
	Year         int
	StartTime    string
	EndTime      string
	// Location the wall-clock times are interpreted in. Nil means UTC.
	Location *time.Location

	startHour int
	endHour   int
}

// NewWindow validates the raw event fields and returns a ready-to-use Window.
func NewWindow(selectedDays []int, month time.Month, year int, startTime, endTime string, loc *time.Location) (Window, error) {
	w := Window{
		SelectedDays: append([]int(nil), selectedDays...),
		Month:        month,
		Year:         year,
		StartTime:    startTime,
		EndTime:      endTime,
		Location:     loc,
	}
	if err := w.init(); err != nil {
		return Window{}, err
	}
	return w, nil
}

func (w *Window) init() error {
	if w.Location == nil {
		w.Location = time.UTC
	}
	if w.Month < time.January || w.Month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidWindow, w.Month)
	}
	if w.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidWindow, w.Year)
	}
	if len(w.SelectedDays) == 0 {
		return fmt.Errorf("%w: no days selected", ErrInvalidWindow)
	}

	limit := DaysInMonth(w.Month, w.Year)
	seen := make(map[int]struct{}, len(w.SelectedDays))
	for _, d := range w.SelectedDays {
		if d < 1 || d > limit {
			return fmt.Errorf("%w: day %d not in [1, %d]", ErrInvalidWindow, d, limit)
		}
		if _, dup := seen[d]; dup {
			return fmt.Errorf("%w: day %d selected twice", ErrInvalidWindow, d)
		}
		seen[d] = struct{}{}
	}

	sh, _, err := ParseClock(w.StartTime)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidWindow, err)
	}
	eh, _, err := ParseClock(w.EndTime)
	if err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidWindow, err)
	}
	if sh >= eh {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidWindow, w.StartTime, w.EndTime)
	}
	w.startHour, w.endHour = sh, eh

	for _, d := range w.SelectedDays {
		if clock, skipped := w.skippedWallClock(d); skipped {
			return fmt.Errorf("%w: %s does not exist on day %d in %s", ErrInvalidWindow, clock, d, w.Location)
		}
	}
	return nil
}

// skippedWallClock returns the first slot start on day that the location's
// clocks jump over. Such a slot has no instant of its own.
func (w *Window) skippedWallClock(day int) (string, bool) {
	if w.Location == time.UTC {
		return "", false
	}
	for h := w.startHour; h < w.endHour; h++ {
		for m := 0; m < 60; m += SlotMinutes {
			t := time.Date(w.Year, w.Month, day, h, m, 0, 0, w.Location)
			if t.Day() != day || t.Hour() != h || t.Minute() != m {
				return fmt.Sprintf("%02d:%02d", h, m), true
			}
		}
	}
	return "", false
}

// StartHour is the first grid hour of every day.
func (w Window) StartHour() int { return w.startHour }

// EndHour is the exclusive last grid hour.
func (w Window) EndHour() int { return w.endHour }

// Days returns the number of grid days.
func (w Window) Days() int { return len(w.SelectedDays) }

// TotalSlots returns the number of slots in each grid day.
func (w Window) TotalSlots() int { return (w.endHour - w.startHour) * SlotsPerHour }

// Date returns local midnight of the grid day at dayIndex.
func (w Window) Date(dayIndex int) time.Time {
	return time.Date(w.Year, w.Month, w.SelectedDays[dayIndex], 0, 0, 0, 0, w.Location)
}

// DayIndexOf returns the position of a calendar date within SelectedDays.
func (w Window) DayIndexOf(t time.Time) (int, bool) {
	t = t.In(w.Location)
	if t.Year() != w.Year || t.Month() != w.Month {
		return 0, false
	}
	for i, d := range w.SelectedDays {
		if d == t.Day() {
			return i, true
		}
	}
	return 0, false
}

// Bounds returns the earliest and latest instants covered by the grid.
func (w Window) Bounds() (time.Time, time.Time) {
	first, last := w.SelectedDays[0], w.SelectedDays[0]
	for _, d := range w.SelectedDays[1:] {
		if d < first {
			first = d
		}
		if d > last {
			last = d
		}
	}
	start := time.Date(w.Year, w.Month, first, w.startHour, 0, 0, 0, w.Location)
	end := time.Date(w.Year, w.Month, last, w.endHour, 0, 0, 0, w.Location)
	return start, end
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%q is not HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%q has an invalid hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%q has invalid minutes", s)
	}
	return h, m, nil
}
