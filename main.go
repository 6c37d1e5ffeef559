package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"teamfeed/config"
	"teamfeed/database"
	"teamfeed/database/repository"
	userRepo "teamfeed/database/repository/user"
	"teamfeed/handlers"
	"teamfeed/middleware"
	"teamfeed/routes"
	"teamfeed/services/feed"
	"teamfeed/services/notification"
	"teamfeed/services/unread"
	"teamfeed/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open document store: %v", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Warn("main: closing document store", zap.Error(err))
		}
	}()

	probes := map[string]utils.Probe{"store": db.Ping}

	// repositories.
	repos := repository.New(db.Store, cfg.FeedMaxWindows)
	var authors userRepo.UserRepository = repos.Users
	cacheClient, err := utils.NewCacheClient(ctx, cfg)
	switch {
	case err != nil:
		logger.Warn("main: author cache disabled", zap.Error(err))
	case cacheClient != nil:
		defer cacheClient.Close()
		authors = userRepo.NewCachedUserRepo(repos.Users, cacheClient, cfg.AuthorCacheTTL, logger)
		probes["redis"] = func(ctx context.Context) error { return cacheClient.Ping(ctx).Err() }
	}

	// services.
	feedService := &feed.DefaultFeedService{
		Users:    repos.Users,
		Authors:  authors,
		Posts:    repos.Posts,
		PageSize: cfg.FeedPageSize,
		Logger:   logger,
	}
	notificationService := &notification.DefaultNotificationService{
		Repo:   repos.Notifications,
		Users:  authors,
		Logger: logger,
	}
	unreadService := &unread.DefaultUnreadService{
		Notifications: notificationService,
		Chats:         repos.Chats,
	}

	monitor := utils.NewHealthMonitor(probes)
	monitor.Start(ctx, utils.HealthCheckInterval)

	feedHandler := handlers.NewFeedHandler(feedService, logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, logger)
	unreadHandler := handlers.NewUnreadHandler(unreadService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		LatestPostsHandler:      feedHandler.LatestPostsHandler,
		GetNotificationsHandler: notificationHandler.GetNotificationsHandler,
		MarkAsReadHandler:       notificationHandler.MarkAsReadHandler,
		MarkAllAsReadHandler:    notificationHandler.MarkAllAsReadHandler,
		UnreadCountsHandler:     unreadHandler.UnreadCountsHandler,
		Health:                  monitor,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Requests still running after the drain period get their contexts cancelled.
	requestCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()
	srv := &http.Server{
		Addr:        "0.0.0.0:" + cfg.AppPort,
		Handler:     router,
		BaseContext: func(net.Listener) context.Context { return requestCtx },
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		cancelRequests()
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
