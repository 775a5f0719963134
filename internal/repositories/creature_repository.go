package repositories

import (
	"context"

	"pokedex/internal/models"
)

// CreatureRepository defines read access to creatures and their associations.
type CreatureRepository interface {
	GetAll(ctx context.Context) ([]models.Creature, error)
	GetByID(ctx context.Context, id int64) (*models.Creature, error)
	TypesOf(ctx context.Context, id int64) ([]models.NamedRef, error)
	MovesOf(ctx context.Context, id int64) ([]models.NamedRef, error)
	EggGroupsOf(ctx context.Context, id int64) ([]models.NamedRef, error)
}
