package repositories

import (
	"context"

	"pokedex/internal/models"

	"gorm.io/gorm"
)

const (
	typesOfQuery = `SELECT t.id, t.identifier
		FROM pokemon_types pt
		JOIN types t ON pt.type_id = t.id
		WHERE pt.pokemon_id = ?
		ORDER BY pt.slot`

	movesOfQuery = `SELECT DISTINCT m.id, m.identifier
		FROM pokemon_moves pm
		JOIN moves m ON pm.move_id = m.id
		WHERE pm.pokemon_id = ?
		ORDER BY m.id`

	eggGroupsOfQuery = `SELECT eg.id, eg.identifier
		FROM pokemon p
		JOIN pokemon_egg_groups peg ON p.species_id = peg.species_id
		JOIN egg_groups eg ON peg.egg_group_id = eg.id
		WHERE p.id = ?
		ORDER BY eg.id`
)

// GORMCreatureRepository is a GORM implementation of CreatureRepository.
type GORMCreatureRepository struct {
	db    *gorm.DB
	table table[models.Creature]
}

// NewGORMCreatureRepository creates a new instance of GORMCreatureRepository.
func NewGORMCreatureRepository(db *gorm.DB) *GORMCreatureRepository {
	return &GORMCreatureRepository{
		db:    db,
		table: table[models.Creature]{db: db, name: "creatures"},
	}
}

func (r *GORMCreatureRepository) GetAll(ctx context.Context) ([]models.Creature, error) {
	return r.table.all(ctx)
}

func (r *GORMCreatureRepository) GetByID(ctx context.Context, id int64) (*models.Creature, error) {
	return r.table.byID(ctx, id)
}

// TypesOf returns the creature's types in slot order.
func (r *GORMCreatureRepository) TypesOf(ctx context.Context, id int64) ([]models.NamedRef, error) {
	return r.lookup(ctx, "creatures.types_of", typesOfQuery, id)
}

// MovesOf returns each learnable move once, however many levels teach it.
func (r *GORMCreatureRepository) MovesOf(ctx context.Context, id int64) ([]models.NamedRef, error) {
	return r.lookup(ctx, "creatures.moves_of", movesOfQuery, id)
}

// EggGroupsOf resolves egg groups through the creature's species.
func (r *GORMCreatureRepository) EggGroupsOf(ctx context.Context, id int64) ([]models.NamedRef, error) {
	return r.lookup(ctx, "creatures.egg_groups_of", eggGroupsOfQuery, id)
}

func (r *GORMCreatureRepository) lookup(ctx context.Context, op, query string, id int64) ([]models.NamedRef, error) {
	var refs []models.NamedRef
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&refs).Error; err != nil {
		return nil, storageError(op, id, err)
	}
	if refs == nil {
		refs = []models.NamedRef{}
	}
	return refs, nil
}
