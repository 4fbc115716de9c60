// models/user.go
package models

import "time"

// User is a participant identity. It carries no credentials.
type User struct {
	ID        string    `bson:"id" json:"id"`
	UserName  string    `bson:"userName" json:"userName"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicProfile is the minimal view of a user shown next to their availability.
type PublicProfile struct {
	ID       string `bson:"id" json:"id"`
	UserName string `bson:"userName" json:"userName"`
	Email    string `bson:"email" json:"email"`
}

func (u User) Profile() PublicProfile {
	return PublicProfile{ID: u.ID, UserName: u.UserName, Email: u.Email}
}

// CreateUserRequest registers a participant profile.
type CreateUserRequest struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}
