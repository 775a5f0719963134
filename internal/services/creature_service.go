package services

import (
	"context"
	"fmt"

	"pokedex/internal/models"
	"pokedex/internal/repositories"
)

// CreatureService exposes read-only creature lookups.
type CreatureService struct {
	repo repositories.CreatureRepository
}

// NewCreatureService creates a new CreatureService.
func NewCreatureService(repo repositories.CreatureRepository) *CreatureService {
	return &CreatureService{repo: repo}
}

func (s *CreatureService) List(ctx context.Context) ([]models.Creature, error) {
	return s.repo.GetAll(ctx)
}

func (s *CreatureService) Get(ctx context.Context, id int64) (*models.Creature, error) {
	return s.repo.GetByID(ctx, id)
}

// Types returns ErrNotFound when the creature has no types, whether or not
// the creature itself exists.
func (s *CreatureService) Types(ctx context.Context, id int64) ([]models.NamedRef, error) {
	refs, err := s.repo.TypesOf(ctx, id)
	return nonEmpty("types", id, refs, err)
}

func (s *CreatureService) Moves(ctx context.Context, id int64) ([]models.NamedRef, error) {
	refs, err := s.repo.MovesOf(ctx, id)
	return nonEmpty("moves", id, refs, err)
}

func (s *CreatureService) EggGroups(ctx context.Context, id int64) ([]models.NamedRef, error) {
	refs, err := s.repo.EggGroupsOf(ctx, id)
	return nonEmpty("egg groups", id, refs, err)
}

func nonEmpty(what string, id int64, refs []models.NamedRef, err error) ([]models.NamedRef, error) {
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("no %s for creature %d: %w", what, id, repositories.ErrNotFound)
	}
	return refs, nil
}
