package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rps_webapp/internal/config"
	"rps_webapp/internal/db"
	httpServer "rps_webapp/internal/http"
	"rps_webapp/internal/http/handlers"
	"rps_webapp/internal/http/middleware"
	"rps_webapp/internal/logger"
	"rps_webapp/internal/match"
	"rps_webapp/internal/repository"
	"rps_webapp/internal/service"
	"rps_webapp/internal/ws"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	redisClient := middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if redisClient != nil {
		defer redisClient.Close()
	}

	userRepo := repository.NewUserRepository(dbPool)
	statsService := service.NewStatsService(repository.NewStatsRepository(dbPool))
	identity := service.NewIdentityService(userRepo, redisClient)

	hub := ws.NewHub()
	registry := match.NewRegistry()
	coord := match.NewCoordinator(registry, hub, statsService, match.Config{
		RoundsPerMatch: cfg.RoundsPerMatch,
		GracePeriod:    cfg.RoomGrace,
		StatsTimeout:   cfg.StatsTimeout,
	})

	checks := map[string]handlers.Check{
		"database": dbPool.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	health := handlers.NewHealthHandler(version, checks)
	health.Report("rooms_active", registry.Len)
	health.Report("sessions_active", hub.Len)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpServer.CORS(cfg.AllowedOrigin))

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Handler:  handlers.NewHandler(coord, statsService, userRepo),
		Health:   health,
		Hub:      hub,
		Game:     coord,
		Identity: identity,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	// sessions are hijacked connections and are not covered by Shutdown
	hub.Close()
	coord.Close()

	logger.Info("server exited")
}
