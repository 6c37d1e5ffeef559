package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidUnreadOnly = errors.New("invalid unreadOnly")

// queryUserID returns the single non-empty userId query value. Repeated or
// blank values are rejected.
func queryUserID(c *gin.Context) (string, bool) {
	values := c.QueryArray("userId")
	if len(values) != 1 || values[0] == "" {
		return "", false
	}
	return values[0], true
}

// queryUnreadOnly parses the optional unreadOnly flag; absent means false.
func queryUnreadOnly(c *gin.Context) (bool, error) {
	values := c.QueryArray("unreadOnly")
	switch len(values) {
	case 0:
		return false, nil
	case 1:
		v, err := strconv.ParseBool(values[0])
		if err != nil {
			return false, errInvalidUnreadOnly
		}
		return v, nil
	}
	return false, errInvalidUnreadOnly
}

// MarkAsReadRequest is the body of POST /api/markAsRead.
type MarkAsReadRequest struct {
	UserID         string `json:"userId" binding:"required"`
	NotificationID string `json:"notificationId" binding:"required"`
}

// MarkAllAsReadRequest is the body of POST /api/markAllAsRead.
type MarkAllAsReadRequest struct {
	UserID string `json:"userId" binding:"required"`
}
