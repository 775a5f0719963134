package handlers

import (
	"context"

	"pokedex/internal/models"
	"pokedex/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CreatureHandler serves the read-only creature routes.
type CreatureHandler struct {
	service *services.CreatureService
}

// NewCreatureHandler creates a new CreatureHandler.
func NewCreatureHandler(service *services.CreatureService) *CreatureHandler {
	return &CreatureHandler{service: service}
}

// RegisterRoutes registers the creature routes behind the given guards.
func (h *CreatureHandler) RegisterRoutes(router fiber.Router, guards ...fiber.Handler) {
	routes := router.Group("/pokemons", guards...)
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Get("/:id/types", h.lookup(h.service.Types, "No types found for this creature"))
	routes.Get("/:id/moves", h.lookup(h.service.Moves, "No moves found for this creature"))
	routes.Get("/:id/egg-groups", h.lookup(h.service.EggGroups, "No egg groups found for this creature"))
}

func (h *CreatureHandler) HandleList(c *fiber.Ctx) error {
	creatures, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err, "Creature not found")
	}
	return c.JSON(creatures)
}

func (h *CreatureHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, msgInvalidID)
	}

	creature, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Creature not found")
	}
	return c.JSON(creature)
}

func (h *CreatureHandler) lookup(fetch func(context.Context, int64) ([]models.NamedRef, error), notFound string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := pathID(c)
		if !ok {
			return errorJSON(c, fiber.StatusBadRequest, msgInvalidID)
		}

		refs, err := fetch(c.UserContext(), id)
		if err != nil {
			return respondError(c, err, notFound)
		}
		return c.JSON(refs)
	}
}
