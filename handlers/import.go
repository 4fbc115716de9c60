package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/services/calendarimport"
	"when3meet/utils"
)

type CalendarImporter interface {
	FromGoogle(ctx context.Context, eventID, accessToken string) (*calendarimport.Result, error)
	FromICS(ctx context.Context, eventID, feedURL string) (*calendarimport.Result, error)
}

type ImportHandler struct {
	Importer CalendarImporter
	Logger   *zap.Logger
}

func NewImportHandler(importer CalendarImporter, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{Importer: importer, Logger: logger}
}

type googleImportRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

type icsImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportGoogleHandler handles POST /api/events/:eventId/import/google.
func (h *ImportHandler) ImportGoogleHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req googleImportRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	res, err := h.Importer.FromGoogle(c.Request.Context(), c.Param("eventId"), req.AccessToken)
	h.respond(c, logger, res, err)
}

// ImportICSHandler handles POST /api/events/:eventId/import/ics.
func (h *ImportHandler) ImportICSHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req icsImportRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	res, err := h.Importer.FromICS(c.Request.Context(), c.Param("eventId"), req.URL)
	h.respond(c, logger, res, err)
}

func (h *ImportHandler) respond(c *gin.Context, logger *zap.Logger, res *calendarimport.Result, err error) {
	if err != nil {
		utils.JSONError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"status":     res.Status,
		"source":     res.Source,
		"eventCount": res.EventCount,
		"free":       res.Free,
	})
}
