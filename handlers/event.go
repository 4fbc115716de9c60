package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/services/event"
	"when3meet/services/slotgrid"
	"when3meet/utils"
)

type EventHandler struct {
	Service event.EventService
	Logger  *zap.Logger
}

func NewEventHandler(svc event.EventService, logger *zap.Logger) *EventHandler {
	return &EventHandler{Service: svc, Logger: logger}
}

// CreateEventHandler handles POST /api/events. The admin token is returned
// here and nowhere else.
func (h *EventHandler) CreateEventHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req models.CreateEventRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	ev, err := h.Service.CreateEvent(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "event": ev, "adminToken": ev.AdminToken})
}

// GetEventHandler handles GET /api/events/:eventId?admin=<token>.
func (h *EventHandler) GetEventHandler(c *gin.Context) {
	ev, err := h.Service.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": ev, "isAdmin": event.IsAdmin(ev, c.Query("admin"))})
}

type gridDay struct {
	DayIndex int    `json:"dayIndex"`
	Date     string `json:"date"`
}

// GetGridHandler handles GET /api/events/:eventId/grid: the empty selection
// grid with its day and slot labels.
func (h *EventHandler) GetGridHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	ev, err := h.Service.GetEvent(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		utils.JSONError(c, logger, err)
		return
	}
	w, err := ev.SlotWindow()
	if err != nil {
		utils.JSONError(c, logger, utils.Internal("stored event has an invalid window", err))
		return
	}

	days := make([]gridDay, w.Days())
	for i := range days {
		days[i] = gridDay{DayIndex: i, Date: w.Date(i).Format("2006-01-02")}
	}
	labels := make([]string, w.TotalSlots())
	for i := range labels {
		labels[i] = slotgrid.Label(w, i)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"eventId":    ev.ID,
		"days":       days,
		"slotLabels": labels,
		"grid":       slotgrid.BuildEmptyGrid(w),
	})
}
