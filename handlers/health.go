package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"

	"when3meet/utils"
)

// HealthHandler reports on the backing services. Redis is optional, so only
// MongoDB decides the status code.
func HealthHandler(mongoClient *mongo.Client, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := utils.CheckHealth(c.Request.Context(), redisClient, mongoClient)
		code := http.StatusOK
		state := "ok"
		if !status.Mongo {
			code = http.StatusServiceUnavailable
			state = "degraded"
		}
		c.JSON(code, gin.H{"status": state, "services": status})
	}
}
