package routes

import (
	"net/http"
	"time"

	"teamfeed/handlers"
	"teamfeed/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterFeedRoutes registers the post feed endpoint.
func RegisterFeedRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/latestPosts", hb.LatestPostsHandler)
}

// RegisterNotificationRoutes registers notification read and update endpoints.
func RegisterNotificationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/notifications", hb.GetNotificationsHandler)
	api.POST("/markAsRead", hb.MarkAsReadHandler)
	api.POST("/markAllAsRead", hb.MarkAllAsReadHandler)
	api.GET("/unreadCounts", hb.UnreadCountsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, monitor *utils.HealthMonitor) {
	r.GET("/health", func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status := monitor.Status()
		if !status.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "services": status.Services, "checkedAt": status.CheckedAt})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": status.Services, "checkedAt": status.CheckedAt})
	})
}

// RegisterMetricsRoute exposes Prometheus metrics.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
// A known path requested with the wrong verb answers 405.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", utils.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		utils.JSONError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, "Not Found")
	})

	api := r.Group("/api")
	RegisterFeedRoutes(api, hb)
	RegisterNotificationRoutes(api, hb)
	RegisterHealthRoute(r, hb.Health)
	RegisterMetricsRoute(r)
}
