package repositories

import (
	"context"

	"pokedex/internal/models"

	"gorm.io/gorm"
)

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	GetAll(ctx context.Context) ([]models.Item, error)
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, id int64, item *models.Item) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	table table[models.Item]
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{table: table[models.Item]{db: db, name: "items"}}
}

func (r *GORMItemRepository) GetAll(ctx context.Context) ([]models.Item, error) {
	return r.table.all(ctx)
}

func (r *GORMItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return r.table.byID(ctx, id)
}

func (r *GORMItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.table.create(ctx, item)
}

// Update overwrites the item. Absent fling fields are written as NULL.
func (r *GORMItemRepository) Update(ctx context.Context, id int64, item *models.Item) (bool, error) {
	return r.table.exec(ctx, id,
		"UPDATE items SET identifier = ?, category_id = ?, cost = ?, fling_power = ?, fling_effect_id = ? WHERE id = ?",
		item.Identifier, item.CategoryID, item.Cost, item.FlingPower, item.FlingEffectID)
}

func (r *GORMItemRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.delete(ctx, id)
}
