package handlers

import (
	"errors"
	"net/http"

	"teamfeed/services/notification"
	"teamfeed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves notification reads and read-state updates.
type NotificationHandler struct {
	Service notification.NotificationService
	Logger  *zap.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(service notification.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Service: service, Logger: logger}
}

// GetNotificationsHandler handles GET /api/notifications?userId=&unreadOnly=.
func (h *NotificationHandler) GetNotificationsHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	userID, ok := queryUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid userId")
		return
	}
	unreadOnly, err := queryUnreadOnly(c)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid unreadOnly")
		return
	}

	list, err := h.Service.GetNotifications(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		logger.Error("Failed to fetch notifications", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to fetch notifications")
		return
	}
	c.JSON(http.StatusOK, list)
}

// MarkAsReadHandler handles POST /api/markAsRead.
func (h *NotificationHandler) MarkAsReadHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req MarkAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Invalid markAsRead body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Missing required parameters")
		return
	}

	err := h.Service.MarkAsRead(c.Request.Context(), req.UserID, req.NotificationID)
	if errors.Is(err, notification.ErrNotFound) {
		utils.JSONError(c, http.StatusNotFound, "Notification not found")
		return
	}
	if err != nil {
		logger.Error("Failed to update notification",
			zap.String("userId", req.UserID),
			zap.String("notificationId", req.NotificationID),
			zap.Error(err),
		)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkAllAsReadHandler handles POST /api/markAllAsRead.
func (h *NotificationHandler) MarkAllAsReadHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	var req MarkAllAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Invalid markAllAsRead body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Missing required parameter: userId")
		return
	}

	updated, err := h.Service.MarkAllAsRead(c.Request.Context(), req.UserID)
	if err != nil {
		logger.Error("Failed to update notifications", zap.String("userId", req.UserID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to update notifications")
		return
	}
	logger.Info("Marked all notifications as read", zap.String("userId", req.UserID), zap.Int("updated", updated))
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}
