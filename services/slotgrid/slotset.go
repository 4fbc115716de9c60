// File: services/slotgrid/slotset.go
package slotgrid

import (
	"fmt"
	"sort"
)

// SlotSet is the canonical in-memory form of a participant's selection.
type SlotSet map[Slot]struct{}

// NewSlotSet builds a set from the given coordinates.
func NewSlotSet(slots ...Slot) SlotSet {
	s := make(SlotSet, len(slots))
	for _, sl := range slots {
		s[sl] = struct{}{}
	}
	return s
}

func (s SlotSet) Add(dayIndex, slotIndex int) {
	s[Slot{Day: dayIndex, Index: slotIndex}] = struct{}{}
}

func (s SlotSet) Contains(dayIndex, slotIndex int) bool {
	_, ok := s[Slot{Day: dayIndex, Index: slotIndex}]
	return ok
}

func (s SlotSet) Len() int { return len(s) }

// Sorted returns the coordinates ordered by day then slot.
func (s SlotSet) Sorted() []Slot {
	out := make([]Slot, 0, len(s))
	for sl := range s {
		out = append(out, sl)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// DecodeDays converts the wire form (one array of slot indices per grid day)
// into a set, rejecting anything that does not fit the window.
func DecodeDays(w Window, days [][]int) (SlotSet, error) {
	if len(days) > w.Days() {
		return nil, fmt.Errorf("%w: %d day arrays for a %d-day grid", ErrOutOfRange, len(days), w.Days())
	}
	set := make(SlotSet)
	for d, slots := range days {
		for _, idx := range slots {
			if !w.InRange(d, idx) {
				return nil, fmt.Errorf("%w: slot %d on day %d (grid has %d slots)", ErrOutOfRange, idx, d, w.TotalSlots())
			}
			set.Add(d, idx)
		}
	}
	return set, nil
}

// EncodeDays renders the set in the wire form: exactly one sorted,
// duplicate-free array per grid day.
func EncodeDays(w Window, s SlotSet) [][]int {
	days := make([][]int, w.Days())
	for i := range days {
		days[i] = []int{}
	}
	for _, sl := range s.Sorted() {
		if sl.Day >= 0 && sl.Day < len(days) {
			days[sl.Day] = append(days[sl.Day], sl.Index)
		}
	}
	return days
}

// FromDays builds a set from stored per-day arrays without a window check.
func FromDays(days [][]int) SlotSet {
	set := make(SlotSet)
	for d, slots := range days {
		for _, idx := range slots {
			set.Add(d, idx)
		}
	}
	return set
}

// FromGrid collects every true cell of a boolean matrix.
func FromGrid(grid [][]bool) SlotSet {
	set := make(SlotSet)
	for d, row := range grid {
		for i, on := range row {
			if on {
				set.Add(d, i)
			}
		}
	}
	return set
}
