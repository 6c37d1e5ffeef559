package handlers

import (
	"teamfeed/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Feed endpoints
	LatestPostsHandler gin.HandlerFunc

	// Notification endpoints
	GetNotificationsHandler gin.HandlerFunc
	MarkAsReadHandler       gin.HandlerFunc
	MarkAllAsReadHandler    gin.HandlerFunc

	// Unread counters
	UnreadCountsHandler gin.HandlerFunc

	// Health reports the latest backing-service snapshot; nil means always ok.
	Health *utils.HealthMonitor
}
