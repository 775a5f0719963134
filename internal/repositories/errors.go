package repositories

import (
	"errors"
	"fmt"
	"log/slog"

	"pokedex/internal/database"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row has the requested id or key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a write collides with a unique index.
	ErrDuplicate = errors.New("record already exists")

	// ErrStorage wraps any other driver failure.
	ErrStorage = errors.New("storage failure")
)

// storageError logs a failed statement and wraps it so callers can match on
// ErrNotFound, ErrDuplicate or ErrStorage.
func storageError(op string, id any, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case database.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	slog.Error("storage operation failed", "op", op, "id", id, "error", err)
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
