package services_test

import (
	"context"

	"pokedex/internal/events"
	"pokedex/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id int64, user *models.User) (bool, error) {
	args := m.Called(ctx, id, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockMoveRepository is a mock implementation of repositories.MoveRepository
type MockMoveRepository struct {
	mock.Mock
}

func (m *MockMoveRepository) GetAll(ctx context.Context) ([]models.Move, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Move), args.Error(1)
}

func (m *MockMoveRepository) GetByID(ctx context.Context, id int64) (*models.Move, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Move), args.Error(1)
}

func (m *MockMoveRepository) Create(ctx context.Context, move *models.Move) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

func (m *MockMoveRepository) Update(ctx context.Context, id int64, move *models.Move) (bool, error) {
	args := m.Called(ctx, id, move)
	return args.Bool(0), args.Error(1)
}

func (m *MockMoveRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockCreatureRepository is a mock implementation of repositories.CreatureRepository
type MockCreatureRepository struct {
	mock.Mock
}

func (m *MockCreatureRepository) GetAll(ctx context.Context) ([]models.Creature, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Creature), args.Error(1)
}

func (m *MockCreatureRepository) GetByID(ctx context.Context, id int64) (*models.Creature, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creature), args.Error(1)
}

func (m *MockCreatureRepository) TypesOf(ctx context.Context, id int64) ([]models.NamedRef, error) {
	return m.refs(m.Called(ctx, id))
}

func (m *MockCreatureRepository) MovesOf(ctx context.Context, id int64) ([]models.NamedRef, error) {
	return m.refs(m.Called(ctx, id))
}

func (m *MockCreatureRepository) EggGroupsOf(ctx context.Context, id int64) ([]models.NamedRef, error) {
	return m.refs(m.Called(ctx, id))
}

func (m *MockCreatureRepository) refs(args mock.Arguments) ([]models.NamedRef, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NamedRef), args.Error(1)
}

// MockPublisher records catalog events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishCatalogEvent(ctx context.Context, event events.CatalogEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventFor(resource, action string, id int64) interface{} {
	return mock.MatchedBy(func(e events.CatalogEvent) bool {
		return e.Resource == resource && e.Action == action && e.ID == id && !e.OccurredAt.IsZero()
	})
}
