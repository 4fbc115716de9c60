package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"when3meet/handlers"
)

// RegisterEventRoutes registers event, grid, heatmap and import endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.POST("", hb.CreateEventHandler)
		api.GET("/:eventId", hb.GetEventHandler)
		api.GET("/:eventId/grid", hb.GetGridHandler)
		api.GET("/:eventId/heatmap", hb.GetHeatmapHandler)

		api.PUT("/:eventId/availabilities", hb.UpsertAvailabilityHandler)
		api.GET("/:eventId/availabilities", hb.ListAvailabilitiesHandler)
		api.DELETE("/:eventId/availabilities/:userId", hb.DeleteUserAvailabilityHandler)

		api.POST("/:eventId/import/google", hb.ImportGoogleHandler)
		api.POST("/:eventId/import/ics", hb.ImportICSHandler)
	}
}

// RegisterAvailabilityRoutes registers lookups of single records by their own ID.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availabilities")
	{
		api.GET("/:availabilityId", hb.GetAvailabilityHandler)
		api.DELETE("/:availabilityId", hb.DeleteAvailabilityHandler)
	}
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("", hb.CreateUserHandler)
		api.GET("/:userId", hb.GetUserByIDHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// corsConfig allows any origin when origins is empty or contains "*".
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, corsOrigins []string) {
	r.Use(cors.New(corsConfig(corsOrigins)))

	RegisterEventRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
