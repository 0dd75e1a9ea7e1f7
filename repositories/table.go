package repositories

import (
	"HospitalAdmin/models"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// table holds the single-row operations every repository shares.
type table[T any] struct {
	db       *gorm.DB
	preloads []string
}

func (t table[T]) session(ctx context.Context) *gorm.DB {
	q := t.db.WithContext(ctx)
	for _, p := range t.preloads {
		q = q.Preload(p)
	}
	return q
}

// validID rejects identifiers Postgres would refuse to compare with a uuid
// column. They can never match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (t table[T]) get(ctx context.Context, id string) (*T, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var row T
	if err := t.session(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &row, nil
}

func (t table[T]) create(ctx context.Context, row *T) error {
	return classify(t.db.WithContext(ctx).Create(row).Error)
}

// update writes only the given columns and returns the stored row.
func (t table[T]) update(ctx context.Context, id string, cols models.Columns) (*T, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	if len(cols) > 0 {
		res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}(cols))
		if res.Error != nil {
			return nil, classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return t.get(ctx, id)
}

// delete removes the row. Deleting a missing row is ErrNotFound.
func (t table[T]) delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return classifyDelete(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
