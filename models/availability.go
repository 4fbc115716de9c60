// File: models/availability.go
package models

import "time"

// Availability is one participant's selection for one event.
type Availability struct {
	ID       string `bson:"id" json:"id"`
	EventID  string `bson:"eventId" json:"eventId"`
	UserID   string `bson:"userId" json:"userId"`
	TimeZone string `bson:"timeZone,omitempty" json:"timeZone,omitempty"`
	// Slots holds one array of slot indices per grid day.
	Slots [][]int `bson:"slots" json:"slots"`

	SchemaVersion int       `bson:"schemaVersion" json:"schemaVersion"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AvailabilityView is an Availability with its participant resolved to a
// public profile.
type AvailabilityView struct {
	ID        string        `json:"id"`
	EventID   string        `json:"eventId"`
	User      PublicProfile `json:"userId"`
	TimeZone  string        `json:"timeZone,omitempty"`
	Slots     [][]int       `json:"slots"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// NewAvailabilityView joins a record with its participant profile.
func NewAvailabilityView(a Availability, p PublicProfile) AvailabilityView {
	return AvailabilityView{
		ID:        a.ID,
		EventID:   a.EventID,
		User:      p,
		TimeZone:  a.TimeZone,
		Slots:     a.Slots,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// UpsertAvailabilityRequest is the body of PUT /events/:eventId/availabilities.
type UpsertAvailabilityRequest struct {
	UserID   string  `json:"userId"`
	Slots    [][]int `json:"slots"`
	TimeZone string  `json:"timeZone"`
}
