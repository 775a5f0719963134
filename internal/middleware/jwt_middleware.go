package middleware

import (
	"errors"
	"log/slog"
	"strings"

	"pokedex/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthRequired.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*services.Claims, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// A missing token is 401; a token that fails verification is 403.
func AuthRequired(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme, token, _ := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication token required",
			})
		}

		claims, err := verifier.VerifyToken(token)
		if err != nil {
			slog.Info("token rejected", "path", c.Path(), "reason", err.Error())
			msg := "Invalid or expired token"
			if errors.Is(err, services.ErrTokenPayload) {
				msg = "Invalid token payload"
			}
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": msg,
			})
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)

		return c.Next()
	}
}
