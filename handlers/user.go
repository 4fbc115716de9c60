package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"when3meet/models"
	"when3meet/services/user"
	"when3meet/utils"
)

type UserHandler struct {
	UserService user.UserService
	Logger      *zap.Logger
}

func NewUserHandler(svc user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{UserService: svc, Logger: logger}
}

// CreateUserHandler handles POST /api/users.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req models.CreateUserRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	usr, err := h.UserService.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": usr})
}

// GetUserByIDHandler handles GET /api/users/:userId.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	usr, err := h.UserService.GetUserByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		utils.JSONError(c, getLogger(c, h.Logger), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": usr})
}
