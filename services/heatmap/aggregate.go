// File: services/heatmap/aggregate.go
package heatmap

import (
	"fmt"
	"math"

	"when3meet/services/slotgrid"
)

// RGB is a display color.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Endpoint colors of the heatmap gradient.
var (
	LowColor  = RGB{R: 240, G: 220, B: 255}
	HighColor = RGB{R: 106, G: 27, B: 154}
)

// Response is one participant's contribution to the heatmap.
type Response struct {
	Name  string
	Slots slotgrid.SlotSet
}

// CountAt returns how many responses include the coordinate.
func CountAt(responses []Response, dayIndex, slotIndex int) int {
	n := 0
	for _, r := range responses {
		if r.Slots.Contains(dayIndex, slotIndex) {
			n++
		}
	}
	return n
}

// NamesAt returns the names of the responses that include the coordinate, in
// response order.
func NamesAt(responses []Response, dayIndex, slotIndex int) []string {
	names := []string{}
	for _, r := range responses {
		if r.Slots.Contains(dayIndex, slotIndex) {
			names = append(names, r.Name)
		}
	}
	return names
}

// Intensity is the overlap ratio count/total, or 0 when nobody responded.
func Intensity(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total)
}

// HeatColor interpolates each channel linearly between LowColor and HighColor.
func HeatColor(intensity float64) RGB {
	return RGB{
		R: channel(LowColor.R, HighColor.R, intensity),
		G: channel(LowColor.G, HighColor.G, intensity),
		B: channel(LowColor.B, HighColor.B, intensity),
	}
}

func channel(low, high int, intensity float64) int {
	return int(math.Round(float64(low) - float64(low-high)*intensity))
}
