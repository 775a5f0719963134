package repositories

import (
	"context"
	"time"

	"pokedex/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db    *gorm.DB
	table table[models.User]
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db:    db,
		table: table[models.User]{db: db, name: "users"},
	}
}

func (r *GORMUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	return r.table.all(ctx)
}

func (r *GORMUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.table.byID(ctx, id)
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, storageError("users.get_by_email", nil, err)
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, storageError("users.get_by_username", nil, err)
	}
	return &user, nil
}

// Create inserts the user; a taken username or email yields ErrDuplicate.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.table.create(ctx, user)
}

// Update rewrites the account fields and bumps updated_at.
func (r *GORMUserRepository) Update(ctx context.Context, id int64, user *models.User) (bool, error) {
	user.UpdatedAt = time.Now()
	return r.table.exec(ctx, id,
		"UPDATE users SET username = ?, email = ?, password_hash = ?, updated_at = ? WHERE id = ?",
		user.Username, user.Email, user.PasswordHash, user.UpdatedAt)
}

func (r *GORMUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.table.delete(ctx, id)
}
