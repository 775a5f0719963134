package repositories

import (
	"context"

	"pokedex/internal/models"

	"gorm.io/gorm"
)

// TypeRepository defines the interface for type data access.
type TypeRepository interface {
	GetAll(ctx context.Context) ([]models.Type, error)
	GetByID(ctx context.Context, id int64) (*models.Type, error)
	Create(ctx context.Context, t *models.Type) error
	Update(ctx context.Context, id int64, t *models.Type) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// GORMTypeRepository is a GORM implementation of TypeRepository.
type GORMTypeRepository struct {
	table table[models.Type]
}

// NewGORMTypeRepository creates a new instance of GORMTypeRepository.
func NewGORMTypeRepository(db *gorm.DB) *GORMTypeRepository {
	return &GORMTypeRepository{table: table[models.Type]{db: db, name: "types"}}
}

func (r *GORMTypeRepository) GetAll(ctx context.Context) ([]models.Type, error) {
	return r.table.all(ctx)
}

func (r *GORMTypeRepository) GetByID(ctx context.Context, id int64) (*models.Type, error) {
	return r.table.byID(ctx, id)
}

func (r *GORMTypeRepository) Create(ctx context.Context, t *models.Type) error {
	return r.table.create(ctx, t)
}

func (r *GORMTypeRepository) Update(ctx context.Context, id int64, t *models.Type) (bool, error) {
	return r.table.exec(ctx, id,
		"UPDATE types SET identifier = ?, generation_id = ?, damage_class_id = ? WHERE id = ?",
		t.Identifier, t.GenerationID, t.DamageClassID)
}

func (r *GORMTypeRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.delete(ctx, id)
}
