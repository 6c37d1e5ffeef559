package handlers

import (
	"net/http"

	"teamfeed/services/unread"
	"teamfeed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UnreadHandler serves combined unread counters.
type UnreadHandler struct {
	Service unread.UnreadService
	Logger  *zap.Logger
}

// NewUnreadHandler creates an UnreadHandler.
func NewUnreadHandler(service unread.UnreadService, logger *zap.Logger) *UnreadHandler {
	return &UnreadHandler{Service: service, Logger: logger}
}

// UnreadCountsHandler handles GET /api/unreadCounts?userId=.
func (h *UnreadHandler) UnreadCountsHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	userID, ok := queryUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid userId")
		return
	}

	counts, err := h.Service.Counts(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to count unread items", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch unread counts")
		return
	}
	c.JSON(http.StatusOK, counts)
}
