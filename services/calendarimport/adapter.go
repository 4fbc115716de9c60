// File: services/calendarimport/adapter.go
package calendarimport

import (
	"time"

	"when3meet/services/slotgrid"
)

// BusyInterval is a span during which the participant is known to be unavailable.
type BusyInterval struct {
	Start   time.Time
	End     time.Time
	Summary string
}

// BusySlots maps busy intervals onto the grid. An interval is attributed to the
// grid day its start falls on; overlapping intervals merge by set union.
func BusySlots(w slotgrid.Window, intervals []BusyInterval) slotgrid.SlotSet {
	busy := make(slotgrid.SlotSet)
	gridStart := w.StartHour() * 60
	gridEnd := w.EndHour() * 60
	total := w.TotalSlots()

	for _, iv := range intervals {
		if !iv.End.After(iv.Start) {
			continue
		}
		dayIndex, ok := w.DayIndexOf(iv.Start)
		if !ok {
			continue
		}
		start := iv.Start.In(w.Location)
		end := iv.End.In(w.Location)

		startMin := start.Hour()*60 + start.Minute()
		endMin := end.Hour()*60 + end.Minute()
		if end.Second() > 0 || end.Nanosecond() > 0 {
			endMin++
		}
		if !sameDate(start, end) {
			endMin = 24 * 60
		}
		if endMin <= gridStart || startMin >= gridEnd {
			continue
		}

		startSlot := 0
		if startMin > gridStart {
			startSlot = (startMin - gridStart) / slotgrid.SlotMinutes
		}
		endSlot := (endMin - gridStart + slotgrid.SlotMinutes - 1) / slotgrid.SlotMinutes
		if endSlot > total {
			endSlot = total
		}
		for i := startSlot; i < endSlot; i++ {
			busy.Add(dayIndex, i)
		}
	}
	return busy
}

// FreeMatrix is the complement of BusySlots within the grid. With no
// intervals every slot is free: an empty calendar cannot be told apart from a
// fully free one at this level.
func FreeMatrix(w slotgrid.Window, intervals []BusyInterval) [][]bool {
	busy := BusySlots(w, intervals)
	free := slotgrid.BuildEmptyGrid(w)
	for d := range free {
		for s := range free[d] {
			free[d][s] = !busy.Contains(d, s)
		}
	}
	return free
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
