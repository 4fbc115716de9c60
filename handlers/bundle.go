// File: when3meet/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Event endpoints
	CreateEventHandler gin.HandlerFunc
	GetEventHandler    gin.HandlerFunc
	GetGridHandler     gin.HandlerFunc

	// Availability endpoints
	UpsertAvailabilityHandler     gin.HandlerFunc
	ListAvailabilitiesHandler     gin.HandlerFunc
	GetAvailabilityHandler        gin.HandlerFunc
	DeleteAvailabilityHandler     gin.HandlerFunc
	DeleteUserAvailabilityHandler gin.HandlerFunc

	// Heatmap endpoints
	GetHeatmapHandler gin.HandlerFunc

	// Calendar import endpoints
	ImportGoogleHandler gin.HandlerFunc
	ImportICSHandler    gin.HandlerFunc

	// User endpoints
	CreateUserHandler  gin.HandlerFunc
	GetUserByIDHandler gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
