package main

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/sameershaik-coder/account-service/config"
	"github.com/sameershaik-coder/account-service/db"
	"github.com/sameershaik-coder/account-service/internal/auth/handler"
	repo "github.com/sameershaik-coder/account-service/internal/auth/repository/postgres"
	"github.com/sameershaik-coder/account-service/internal/auth/service"
	"github.com/sameershaik-coder/account-service/internal/events"
	"github.com/sameershaik-coder/account-service/internal/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		return
	}
	defer dbPool.Close()

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin, userRepo)
	userService := service.NewUserService(userRepo, tokenService,
		service.MinLengthPolicy(cfg.PasswordMinLength), publisher, logger)
	authHandler := handler.NewAuthHandler(userService, tokenService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	logger.Info("starting account service", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
	}
}
