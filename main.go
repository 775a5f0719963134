package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"pokedex/internal/app"
	"pokedex/internal/config"
	"pokedex/internal/database"
	"pokedex/internal/events"
	"pokedex/internal/logging"
	"pokedex/internal/repositories"
	"pokedex/internal/services"
	"pokedex/pkg/rabbitmq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	_, logOut := logging.Setup(cfg.LogLevel, cfg.LogFile)

	db, err := database.Open(database.Config{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(context.Background(), db, cfg.DBDriver); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	// Catalog events are optional; without a broker they are dropped.
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			slog.Error("failed to initialize RabbitMQ client", "error", err)
			os.Exit(1)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	authService := services.NewAuthService(repositories.NewGORMUserRepository(db), cfg.JWTSecret, cfg.JWTTTL)
	server := app.New(db, authService, publisher, logOut)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", cfg.AppPort)
		if err := server.Listen(cfg.AppPort); err != nil {
			slog.Error("server stopped", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	slog.Info("shutting down server")

	if err := server.Shutdown(); err != nil {
		slog.Error("error during fiber shutdown", "error", err)
	}
	slog.Info("server gracefully stopped")
}
