// Package app assembles the HTTP application.
package app

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"pokedex/internal/events"
	"pokedex/internal/handlers"
	"pokedex/internal/middleware"
	"pokedex/internal/repositories"
	"pokedex/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a fiber app. accessLog
// may be nil, in which case access lines go to stdout.
func New(db *gorm.DB, authService *services.AuthService, publisher events.Publisher, accessLog io.Writer) *fiber.App {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if accessLog == nil {
		accessLog = os.Stdout
	}

	creatureService := services.NewCreatureService(repositories.NewGORMCreatureRepository(db))
	moveService := services.NewMoveService(repositories.NewGORMMoveRepository(db), publisher)
	typeService := services.NewTypeService(repositories.NewGORMTypeRepository(db), publisher)
	itemService := services.NewItemService(repositories.NewGORMItemRepository(db), publisher)

	app := fiber.New(fiber.Config{
		AppName:      "pokedex",
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	app.Use(recover.New())

	api := app.Group("/api")
	handlers.NewCreatureHandler(creatureService).RegisterRoutes(api, middleware.AuthRequired(authService))
	handlers.NewMoveHandler(moveService).RegisterRoutes(api)
	handlers.NewTypeHandler(typeService).RegisterRoutes(api)
	handlers.NewItemHandler(itemService).RegisterRoutes(api)
	handlers.NewUserHandler(authService).RegisterRoutes(api)

	app.Get("/health", healthHandler(db))

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, code := "healthy", fiber.StatusOK
		database := "up"

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			slog.Warn("health check failed", "error", err)
			status, code, database = "unhealthy", fiber.StatusServiceUnavailable, "down"
		}

		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"database": database,
			"time":     time.Now().Format(time.RFC3339),
		})
	}
}

// errorHandler renders errors that escape handlers, including unmatched
// routes and recovered panics, as JSON without internal detail.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	slog.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
