package repositories

import (
	"context"

	"pokedex/internal/models"

	"gorm.io/gorm"
)

// MoveRepository defines the interface for move data access.
type MoveRepository interface {
	GetAll(ctx context.Context) ([]models.Move, error)
	GetByID(ctx context.Context, id int64) (*models.Move, error)
	Create(ctx context.Context, move *models.Move) error
	Update(ctx context.Context, id int64, move *models.Move) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

const updateMoveQuery = `UPDATE moves SET
	identifier = ?, generation_id = ?, type_id = ?, power = ?, pp = ?, accuracy = ?,
	priority = ?, target_id = ?, damage_class_id = ?, effect_id = ?, effect_chance = ?,
	contest_type_id = ?, contest_effect_id = ?, super_contest_effect_id = ?
	WHERE id = ?`

// GORMMoveRepository is a GORM implementation of MoveRepository.
type GORMMoveRepository struct {
	table table[models.Move]
}

// NewGORMMoveRepository creates a new instance of GORMMoveRepository.
func NewGORMMoveRepository(db *gorm.DB) *GORMMoveRepository {
	return &GORMMoveRepository{table: table[models.Move]{db: db, name: "moves"}}
}

func (r *GORMMoveRepository) GetAll(ctx context.Context) ([]models.Move, error) {
	return r.table.all(ctx)
}

func (r *GORMMoveRepository) GetByID(ctx context.Context, id int64) (*models.Move, error) {
	return r.table.byID(ctx, id)
}

func (r *GORMMoveRepository) Create(ctx context.Context, move *models.Move) error {
	return r.table.create(ctx, move)
}

// Update overwrites every column of the move. The record's own ID is ignored.
func (r *GORMMoveRepository) Update(ctx context.Context, id int64, m *models.Move) (bool, error) {
	return r.table.exec(ctx, id, updateMoveQuery,
		m.Identifier, m.GenerationID, m.TypeID, m.Power, m.PP, m.Accuracy,
		m.Priority, m.TargetID, m.DamageClassID, m.EffectID, m.EffectChance,
		m.ContestTypeID, m.ContestEffectID, m.SuperContestEffectID)
}

func (r *GORMMoveRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.delete(ctx, id)
}
