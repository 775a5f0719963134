package repositories

import (
	"context"

	"gorm.io/gorm"
)

// table runs the statements every catalog accessor shares against one model.
type table[T any] struct {
	db   *gorm.DB
	name string
}

func (t table[T]) all(ctx context.Context) ([]T, error) {
	rows := []T{}
	if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, storageError(t.name+".get_all", nil, err)
	}
	return rows, nil
}

func (t table[T]) byID(ctx context.Context, id int64) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, storageError(t.name+".get_by_id", id, err)
	}
	return &row, nil
}

func (t table[T]) create(ctx context.Context, row *T) error {
	if err := t.db.WithContext(ctx).Create(row).Error; err != nil {
		return storageError(t.name+".create", nil, err)
	}
	return nil
}

// exec runs an UPDATE and reports whether it matched a row.
func (t table[T]) exec(ctx context.Context, id int64, sql string, args ...any) (bool, error) {
	res := t.db.WithContext(ctx).Exec(sql, append(args, id)...)
	if res.Error != nil {
		return false, storageError(t.name+".update", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (t table[T]) delete(ctx context.Context, id int64) (bool, error) {
	var zero T
	res := t.db.WithContext(ctx).Delete(&zero, "id = ?", id)
	if res.Error != nil {
		return false, storageError(t.name+".delete", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
