package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/services/heatmap"
	"when3meet/utils"
)

type SnapshotProvider interface {
	Snapshot(ctx context.Context, eventID string) (*heatmap.Snapshot, error)
}

type HeatmapHandler struct {
	Service SnapshotProvider
	Logger  *zap.Logger
}

func NewHeatmapHandler(svc SnapshotProvider, logger *zap.Logger) *HeatmapHandler {
	return &HeatmapHandler{Service: svc, Logger: logger}
}

// GetHeatmapHandler handles GET /api/events/:eventId/heatmap.
func (h *HeatmapHandler) GetHeatmapHandler(c *gin.Context) {
	snap, err := h.Service.Snapshot(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "heatmap": snap})
}
