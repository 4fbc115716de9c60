// File: when3meet/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"when3meet/config"
	"when3meet/database"
	availabilityRepo "when3meet/database/repository/availability"
	eventRepo "when3meet/database/repository/event"
	userRepo "when3meet/database/repository/user"
	"when3meet/handlers"
	"when3meet/middleware"
	"when3meet/routes"
	"when3meet/services/availability"
	"when3meet/services/calendarimport"
	"when3meet/services/event"
	"when3meet/services/heatmap"
	"when3meet/services/user"
	"when3meet/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: %v", err)
	}
	logger, err := utils.NewLogger(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("main: failed to build logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))

	// repositories.
	usersRepo := userRepo.NewMongoUserRepo(db)
	eventsRepo := eventRepo.NewMongoEventRepo(db)
	recordsRepo := availabilityRepo.NewMongoAvailabilityRepo(db)
	for name, ensure := range map[string]func(context.Context) error{
		"users":          usersRepo.EnsureIndexes,
		"events":         eventsRepo.EnsureIndexes,
		"availabilities": recordsRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			logger.Fatal("main: failed to create indexes", zap.String("collection", name), zap.Error(err))
		}
	}

	// Redis backs the heatmap cache only; without it snapshots are computed per request.
	var (
		cacheClient *redis.Client
		cache       heatmap.Cache = heatmap.NopCache{}
	)
	if cfg.RedisAddr != "" {
		cacheClient, err = utils.NewCacheClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB)
		if err != nil {
			logger.Warn("Heatmap cache disabled", zap.Error(err))
		} else {
			cache = heatmap.NewRedisCache(cacheClient, cfg.HeatmapCacheTTL)
			defer cacheClient.Close()
		}
	}

	// services.
	userService := user.NewService(usersRepo, logger)
	eventService := event.NewService(eventsRepo, usersRepo, logger)
	availabilityService := availability.NewService(recordsRepo, eventService, usersRepo, cache, logger)
	heatmapService := heatmap.NewService(eventService, availabilityService, cache, logger)
	importService := calendarimport.NewService(eventService, logger, cfg.ImportTimeout)

	// handlers.
	eventHandler := handlers.NewEventHandler(eventService, logger)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService, logger)
	heatmapHandler := handlers.NewHeatmapHandler(heatmapService, logger)
	importHandler := handlers.NewImportHandler(importService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)

	handlerBundle := &handlers.HandlerBundle{
		CreateEventHandler: eventHandler.CreateEventHandler,
		GetEventHandler:    eventHandler.GetEventHandler,
		GetGridHandler:     eventHandler.GetGridHandler,

		UpsertAvailabilityHandler:     availabilityHandler.UpsertAvailabilityHandler,
		ListAvailabilitiesHandler:     availabilityHandler.ListAvailabilitiesHandler,
		GetAvailabilityHandler:        availabilityHandler.GetAvailabilityHandler,
		DeleteAvailabilityHandler:     availabilityHandler.DeleteAvailabilityHandler,
		DeleteUserAvailabilityHandler: availabilityHandler.DeleteUserAvailabilityHandler,

		GetHeatmapHandler: heatmapHandler.GetHeatmapHandler,

		ImportGoogleHandler: importHandler.ImportGoogleHandler,
		ImportICSHandler:    importHandler.ImportICSHandler,

		CreateUserHandler:  userHandler.CreateUserHandler,
		GetUserByIDHandler: userHandler.GetUserByIDHandler,

		HealthHandler: handlers.HealthHandler(db.Client, cacheClient),
	}

	// Create the Gin router.
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(utils.ErrorHandler(logger))
	router.Use(utils.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Warn("main: failed to close database", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
