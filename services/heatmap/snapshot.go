// File: services/heatmap/snapshot.go
package heatmap

import (
	"time"

	"when3meet/services/slotgrid"
)

// Cell is the aggregated state of one slot.
type Cell struct {
	Slot      int      `json:"slot"`
	Label     string   `json:"label"`
	Count     int      `json:"count"`
	Names     []string `json:"names"`
	Intensity float64  `json:"intensity"`
	Color     string   `json:"color"`
}

// Day groups the cells of one grid day.
type Day struct {
	DayIndex int       `json:"dayIndex"`
	Date     time.Time `json:"date"`
	Cells    []Cell    `json:"cells"`
}

// Snapshot is the full heatmap of an event at one point in time.
type Snapshot struct {
	EventID     string    `json:"eventId"`
	Total       int       `json:"total"`
	Respondents []string  `json:"respondents"`
	Days        []Day     `json:"days"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Build aggregates every cell of the window. It keeps no state between calls.
func Build(eventID string, w slotgrid.Window, responses []Response, now time.Time) Snapshot {
	total := len(responses)
	snap := Snapshot{
		EventID:     eventID,
		Total:       total,
		Respondents: make([]string, 0, total),
		Days:        make([]Day, w.Days()),
		GeneratedAt: now,
	}
	for _, r := range responses {
		snap.Respondents = append(snap.Respondents, r.Name)
	}

	for d := 0; d < w.Days(); d++ {
		day := Day{DayIndex: d, Date: w.Date(d), Cells: make([]Cell, w.TotalSlots())}
		for s := 0; s < w.TotalSlots(); s++ {
			count := CountAt(responses, d, s)
			intensity := Intensity(count, total)
			day.Cells[s] = Cell{
				Slot:      s,
				Label:     slotgrid.Label(w, s),
				Count:     count,
				Names:     NamesAt(responses, d, s),
				Intensity: intensity,
				Color:     HeatColor(intensity).String(),
			}
		}
		snap.Days[d] = day
	}
	return snap
}
