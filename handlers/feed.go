package handlers

import (
	"net/http"

	"teamfeed/services/feed"
	"teamfeed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeedHandler serves the team post feed.
type FeedHandler struct {
	Service feed.FeedService
	Logger  *zap.Logger
}

// NewFeedHandler creates a FeedHandler.
func NewFeedHandler(service feed.FeedService, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{Service: service, Logger: logger}
}

// LatestPostsHandler handles GET /api/latestPosts?userId=.
func (h *FeedHandler) LatestPostsHandler(c *gin.Context) {
	logger := getLogger(c, h.Logger)

	userID, ok := queryUserID(c)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "Invalid userId")
		return
	}

	posts, err := h.Service.LatestPosts(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to load latest posts", zap.String("userId", userID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
