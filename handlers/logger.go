package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/utils"
)

// getLogger retrieves the request-scoped logger set by utils.RequestLogger,
// falling back to the handler's own.
func getLogger(c *gin.Context, fallback *zap.Logger) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return fallback
}

// bindJSON decodes the request body, answering 400 itself on failure.
func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		logger.Warn("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Error: "Invalid request: " + err.Error(), Reason: "invalid_body"})
		return false
	}
	return true
}
