package services

import (
	"context"
	"fmt"
	"log/slog"

	"pokedex/internal/events"
	"pokedex/internal/models"
	"pokedex/internal/repositories"
)

// catalogRepository is the accessor shape shared by moves, types and items.
type catalogRepository[T any] interface {
	GetAll(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, id int64, row *T) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CatalogService implements list/get/create/update/delete for one catalog
// resource and announces every successful change.
type CatalogService[T any] struct {
	resource  string
	repo      catalogRepository[T]
	publisher events.Publisher
	key       func(*T) *int64
}

type (
	MoveService = CatalogService[models.Move]
	TypeService = CatalogService[models.Type]
	ItemService = CatalogService[models.Item]
)

func NewMoveService(repo repositories.MoveRepository, publisher events.Publisher) *MoveService {
	return &MoveService{resource: "moves", repo: repo, publisher: publisher, key: func(m *models.Move) *int64 { return &m.ID }}
}

func NewTypeService(repo repositories.TypeRepository, publisher events.Publisher) *TypeService {
	return &TypeService{resource: "types", repo: repo, publisher: publisher, key: func(t *models.Type) *int64 { return &t.ID }}
}

func NewItemService(repo repositories.ItemRepository, publisher events.Publisher) *ItemService {
	return &ItemService{resource: "items", repo: repo, publisher: publisher, key: func(i *models.Item) *int64 { return &i.ID }}
}

func (s *CatalogService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

func (s *CatalogService[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores row and fills in its assigned id.
func (s *CatalogService[T]) Create(ctx context.Context, row *T) error {
	*s.key(row) = 0
	if err := s.repo.Create(ctx, row); err != nil {
		return err
	}
	s.publish(ctx, events.ActionCreated, *s.key(row))
	return nil
}

// Update replaces every field of the record with the given id. The returned
// record carries that id regardless of what row held.
func (s *CatalogService[T]) Update(ctx context.Context, id int64, row *T) (*T, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	ok, err := s.repo.Update(ctx, id, row)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", s.resource, id, repositories.ErrNotFound)
	}

	*s.key(row) = id
	s.publish(ctx, events.ActionUpdated, id)
	return row, nil
}

func (s *CatalogService[T]) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %d: %w", s.resource, id, repositories.ErrNotFound)
	}
	s.publish(ctx, events.ActionDeleted, id)
	return nil
}

func (s *CatalogService[T]) publish(ctx context.Context, action string, id int64) {
	if s.publisher == nil {
		return
	}
	event := events.New(s.resource, action, id)
	// The change is committed; a client disconnect must not drop the event.
	if err := s.publisher.PublishCatalogEvent(context.WithoutCancel(ctx), event); err != nil {
		slog.Warn("failed to publish catalog event",
			"resource", s.resource, "action", action, "id", id, "error", err)
	}
}
