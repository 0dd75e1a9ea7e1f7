package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const wardColumns = "wards.*, " +
	"(SELECT COUNT(*) FROM beds WHERE beds.ward_id = wards.id) AS bed_count, " +
	"(SELECT COUNT(*) FROM beds WHERE beds.ward_id = wards.id AND beds.status = 'occupied') AS occupied_count"

type WardRepository struct {
	table[models.Ward]
}

func NewWardRepository(db *gorm.DB) *WardRepository {
	return &WardRepository{table: table[models.Ward]{db: db}}
}

// List returns wards by name with their bed counts.
func (r *WardRepository) List(ctx context.Context, filter models.WardFilter) ([]models.Ward, error) {
	wards := []models.Ward{}
	err := r.db.WithContext(ctx).
		Select(wardColumns).
		Scopes(ilikeAny(filter.Search, "wards.name", "wards.description")).
		Order("wards.name ASC").
		Find(&wards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wards: %w", classify(err))
	}
	return wards, nil
}

func (r *WardRepository) Get(ctx context.Context, id string) (*models.Ward, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var ward models.Ward
	if err := r.db.WithContext(ctx).Select(wardColumns).First(&ward, "wards.id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &ward, nil
}

func (r *WardRepository) Create(ctx context.Context, ward *models.Ward) error {
	if err := r.create(ctx, ward); err != nil {
		return fmt.Errorf("failed to create ward: %w", err)
	}
	return nil
}

func (r *WardRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.Ward, error) {
	if _, err := r.update(ctx, id, cols); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Delete removes a ward that owns no beds. Wards with beds fail with
// ErrHasDependents and stay in place.
func (r *WardRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ward models.Ward
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ward, "id = ?", id).Error; err != nil {
			return classify(err)
		}
		var beds int64
		if err := tx.Model(&models.Bed{}).Where("ward_id = ?", id).Count(&beds).Error; err != nil {
			return classify(err)
		}
		if beds > 0 {
			return fmt.Errorf("%w: ward owns %d beds", ErrHasDependents, beds)
		}
		if err := tx.Delete(&models.Ward{}, "id = ?", id).Error; err != nil {
			return classifyDelete(err)
		}
		return nil
	})
}
