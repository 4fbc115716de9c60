// File: services/slotgrid/grid.go
package slotgrid

import (
	"fmt"
	"time"
)

// Slot addresses one 15-minute cell of the grid.
type Slot struct {
	Day   int `json:"day"`
	Index int `json:"slot"`
}

// BuildEmptyGrid returns an all-false matrix sized days x totalSlots.
func BuildEmptyGrid(w Window) [][]bool {
	grid := make([][]bool, w.Days())
	for i := range grid {
		grid[i] = make([]bool, w.TotalSlots())
	}
	return grid
}

// InRange reports whether the coordinate lies inside the grid.
func (w Window) InRange(dayIndex, slotIndex int) bool {
	return dayIndex >= 0 && dayIndex < w.Days() && slotIndex >= 0 && slotIndex < w.TotalSlots()
}

// SlotToInstant maps a coordinate to the wall-clock instant at which the slot begins.
func SlotToInstant(w Window, dayIndex, slotIndex int) (time.Time, error) {
	if !w.InRange(dayIndex, slotIndex) {
		return time.Time{}, fmt.Errorf("%w: (%d, %d) outside %dx%d grid", ErrOutOfRange, dayIndex, slotIndex, w.Days(), w.TotalSlots())
	}
	hour := w.startHour + slotIndex/SlotsPerHour
	minute := (slotIndex % SlotsPerHour) * SlotMinutes
	return time.Date(w.Year, w.Month, w.SelectedDays[dayIndex], hour, minute, 0, 0, w.Location), nil
}

// InstantToSlot is the inverse of SlotToInstant. The boolean is false when the
// instant does not fall on a grid day or lies outside [startHour, endHour).
func InstantToSlot(w Window, t time.Time) (Slot, bool) {
	dayIndex, ok := w.DayIndexOf(t)
	if !ok {
		return Slot{}, false
	}
	t = t.In(w.Location)
	if t.Hour() < w.startHour || t.Hour() >= w.endHour {
		return Slot{}, false
	}
	index := (t.Hour()-w.startHour)*SlotsPerHour + t.Minute()/SlotMinutes
	return Slot{Day: dayIndex, Index: index}, true
}

// Label renders the start time of a slot as "HH:MM".
func Label(w Window, slotIndex int) string {
	return fmt.Sprintf("%02d:%02d", w.startHour+slotIndex/SlotsPerHour, (slotIndex%SlotsPerHour)*SlotMinutes)
}
