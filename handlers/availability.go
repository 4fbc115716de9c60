package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/services/availability"
	"when3meet/utils"
)

type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Logger  *zap.Logger
}

func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

// UpsertAvailabilityHandler handles PUT /api/events/:eventId/availabilities.
func (h *AvailabilityHandler) UpsertAvailabilityHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req models.UpsertAvailabilityRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	view, err := h.Service.Upsert(c.Request.Context(), c.Param("eventId"), req)
	if err != nil {
		utils.JSONError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availability": view})
}

// ListAvailabilitiesHandler handles GET /api/events/:eventId/availabilities.
func (h *AvailabilityHandler) ListAvailabilitiesHandler(c *gin.Context) {
	views, err := h.Service.ListForEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availabilities": views})
}

// GetAvailabilityHandler handles GET /api/availabilities/:availabilityId.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	view, err := h.Service.GetRecord(c.Request.Context(), c.Param("availabilityId"))
	if err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availability": view})
}

// DeleteAvailabilityHandler handles DELETE /api/availabilities/:availabilityId.
func (h *AvailabilityHandler) DeleteAvailabilityHandler(c *gin.Context) {
	if err := h.Service.DeleteRecordByID(c.Request.Context(), c.Param("availabilityId")); err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Availability deleted"})
}

// DeleteUserAvailabilityHandler handles DELETE /api/events/:eventId/availabilities/:userId.
func (h *AvailabilityHandler) DeleteUserAvailabilityHandler(c *gin.Context) {
	if err := h.Service.DeleteRecord(c.Request.Context(), c.Param("eventId"), c.Param("userId")); err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Availability deleted"})
}
