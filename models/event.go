// File: models/event.go
package models

import (
	"fmt"
	"time"

	"when3meet/services/slotgrid"
)

// Event is a scheduling poll over a fixed set of days and daily hours.
type Event struct {
	ID           string      `bson:"id" json:"id"`
	Title        string      `bson:"title" json:"title"`
	Description  string      `bson:"description,omitempty" json:"description,omitempty"`
	CreatorID    string      `bson:"creatorId" json:"creatorId"`
	Window       EventWindow `bson:"window" json:"window"`
	StartTime    string      `bson:"startTime" json:"startTime"`       // e.g. "09:00"
	EndTime      string      `bson:"endTime" json:"endTime"`           // e.g. "17:00"
	SelectedDays []int       `bson:"selectedDays" json:"selectedDays"` // days of month, in selection order
	Month        int         `bson:"month" json:"month"`               // 1 = January
	Year         int         `bson:"year" json:"year"`
	TimeZone     string      `bson:"timeZone,omitempty" json:"timeZone,omitempty"`
	AdminToken   string      `bson:"adminToken" json:"-"`
	IsPublic     bool        `bson:"isPublic" json:"isPublic"`

	SchemaVersion int       `bson:"schemaVersion" json:"schemaVersion"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EventWindow is the absolute span covered by the grid.
type EventWindow struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// SlotWindow builds the slot geometry of the event.
func (e *Event) SlotWindow() (slotgrid.Window, error) {
	loc := time.UTC
	if e.TimeZone != "" {
		l, err := time.LoadLocation(e.TimeZone)
		if err != nil {
			return slotgrid.Window{}, fmt.Errorf("%w: time zone %q: %v", slotgrid.ErrInvalidWindow, e.TimeZone, err)
		}
		loc = l
	}
	return slotgrid.NewWindow(e.SelectedDays, time.Month(e.Month), e.Year, e.StartTime, e.EndTime, loc)
}

// CreateEventRequest is the payload accepted when creating an event.
type CreateEventRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	CreatorID    string `json:"creatorId" binding:"required"`
	StartTime    string `json:"startTime" binding:"required"`
	EndTime      string `json:"endTime" binding:"required"`
	SelectedDays []int  `json:"selectedDays" binding:"required"`
	Month        int    `json:"month" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	TimeZone     string `json:"timeZone"`
}
