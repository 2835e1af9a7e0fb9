package main

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"healthmon/docs"
	"healthmon/internal/auth"
	"healthmon/internal/cache"
	"healthmon/internal/config"
	"healthmon/internal/db"
	"healthmon/internal/handler"
	"healthmon/internal/model"
	"healthmon/internal/repository"
	"healthmon/internal/router"
	"healthmon/internal/service"
)

// @title Health Monitor API
// @version 1.0
// @description Personal health metrics tracker with JWT authentication, daily goals and progress aggregation.
// @host localhost:8000
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.HealthMetric{},
		&model.Goal{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	metricRepo := repository.NewMetricRepository(gormDB)
	goalRepo := repository.NewGoalRepository(gormDB)

	// Auth components
	jwtService := auth.NewJWTService(cfg.SecretKey, time.Duration(cfg.TokenExpiryMinutes)*time.Minute)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, cacheClient)
	metricService := service.NewMetricService(metricRepo)
	goalService := service.NewGoalService(goalRepo, metricRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	metricHandler := handler.NewMetricHandler(metricService)
	goalHandler := handler.NewGoalHandler(goalService)

	router.Register(e, jwtService, authService, authHandler, metricHandler, goalHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
