package handlers

import (
	"context"

	"pokedex/internal/models"
	"pokedex/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type catalogService[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id int64, row *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

type catalogRequest[T any] interface {
	toModel() *T
}

// CatalogHandler handles HTTP requests for one writable catalog resource.
// R is the request body the resource accepts on create and update.
type CatalogHandler[T any, R catalogRequest[T]] struct {
	path     string
	notFound string
	service  catalogService[T]
	validate *validator.Validate
}

type (
	MoveHandler = CatalogHandler[models.Move, moveRequest]
	TypeHandler = CatalogHandler[models.Type, typeRequest]
	ItemHandler = CatalogHandler[models.Item, itemRequest]
)

func NewMoveHandler(service *services.MoveService) *MoveHandler {
	return &MoveHandler{path: "/moves", notFound: "Move not found", service: service, validate: newValidator()}
}

func NewTypeHandler(service *services.TypeService) *TypeHandler {
	return &TypeHandler{path: "/types", notFound: "Type not found", service: service, validate: newValidator()}
}

func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{path: "/items", notFound: "Item not found", service: service, validate: newValidator()}
}

// RegisterRoutes registers the resource routes on router.
func (h *CatalogHandler[T, R]) RegisterRoutes(router fiber.Router) {
	routes := router.Group(h.path)
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Post("/", h.HandleCreate)
	routes.Put("/:id", h.HandleUpdate)
	routes.Delete("/:id", h.HandleDelete)
}

func (h *CatalogHandler[T, R]) HandleList(c *fiber.Ctx) error {
	rows, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err, h.notFound)
	}
	return c.JSON(rows)
}

func (h *CatalogHandler[T, R]) HandleGet(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, msgInvalidID)
	}

	row, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, h.notFound)
	}
	return c.JSON(row)
}

// HandleCreate responds 201 with the stored record, id included.
func (h *CatalogHandler[T, R]) HandleCreate(c *fiber.Ctx) error {
	var req R
	if ok, err := bind(c, h.validate, &req, msgInvalidFields); !ok {
		return err
	}

	row := req.toModel()
	if err := h.service.Create(c.UserContext(), row); err != nil {
		return respondError(c, err, h.notFound)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// HandleUpdate replaces the whole record and echoes it back with its id.
func (h *CatalogHandler[T, R]) HandleUpdate(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, msgInvalidID)
	}

	var req R
	if ok, err := bind(c, h.validate, &req, msgInvalidFields); !ok {
		return err
	}

	row, err := h.service.Update(c.UserContext(), id, req.toModel())
	if err != nil {
		return respondError(c, err, h.notFound)
	}
	return c.JSON(row)
}

func (h *CatalogHandler[T, R]) HandleDelete(c *fiber.Ctx) error {
	id, ok := pathID(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, msgInvalidID)
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err, h.notFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
