package handlers

import (
	"errors"
	"log/slog"

	"pokedex/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidID     = "Invalid ID"
	msgInvalidBody   = "Invalid request body"
	msgInvalidFields = "Missing or invalid fields"
	msgInternal      = "Internal server error"
)

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// respondError is the single place service errors become HTTP statuses.
// notFound is the message used for a 404.
func respondError(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, repositories.ErrDuplicate):
		return errorJSON(c, fiber.StatusConflict, "Resource already exists")
	}
	slog.Error("request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.Locals("requestid"),
		"error", err)
	return errorJSON(c, fiber.StatusInternalServerError, msgInternal)
}

// pathID parses the :id route parameter as a base-10 integer.
func pathID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, false
	}
	return int64(id), true
}

// bind decodes and validates the body into req. On failure it has already
// written a 400 and returns false.
func bind(c *fiber.Ctx, v *validator.Validate, req interface{}, msg string) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, errorJSON(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	if err := v.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, errorJSON(c, fiber.StatusBadRequest, msg)
		}
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = e.Tag()
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  msg,
			"fields": fields,
		})
	}
	return true, nil
}
