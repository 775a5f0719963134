package handlers

import (
	"errors"
	"log/slog"

	"pokedex/internal/middleware"
	"pokedex/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles registration, login and the current-user lookup.
type UserHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
		validate:    newValidator(),
	}
}

// RegisterRoutes registers the user routes. Only /me requires a token.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Post("/register", h.HandleRegister)
	users.Post("/login", h.HandleLogin)
	users.Get("/me", middleware.AuthRequired(h.authService), h.HandleMe)
}

// HandleRegister creates an account and logs it in.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if ok, err := bind(c, h.validate, &req, "All fields are required"); !ok {
		return err
	}

	user, token, err := h.authService.Register(c.UserContext(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusConflict, "Email already in use")
	case errors.Is(err, services.ErrUsernameTaken):
		return errorJSON(c, fiber.StatusConflict, "Username already taken")
	case err != nil:
		return respondError(c, err, "Registration failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
		"token":   token,
	})
}

// HandleLogin exchanges email and password for a token.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if ok, err := bind(c, h.validate, &req, "Email and password are required"); !ok {
		return err
	}

	user, token, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			slog.Info("login failed", "request_id", c.Locals("requestid"))
			return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		return respondError(c, err, "Invalid credentials")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// HandleMe returns the account the bearer token belongs to.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(int64)
	if !ok || userID == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid user session")
	}

	user, err := h.authService.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err, "User not found")
	}
	return c.JSON(user)
}
