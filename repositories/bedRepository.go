package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BedRepository struct {
	table[models.Bed]
}

func NewBedRepository(db *gorm.DB) *BedRepository {
	return &BedRepository{table: table[models.Bed]{db: db, preloads: []string{"Ward"}}}
}

// List returns beds with their ward embedded.
func (r *BedRepository) List(ctx context.Context, filter models.BedFilter) ([]models.Bed, error) {
	beds := []models.Bed{}
	err := r.session(ctx).
		Scopes(
			eqID("ward_id", filter.WardID),
			eq("status", filter.Status),
			ilikeAny(filter.Search, "bed_number", "notes"),
		).
		Order("ward_id ASC, bed_number ASC").
		Find(&beds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beds: %w", classify(err))
	}
	return beds, nil
}

func (r *BedRepository) Get(ctx context.Context, id string) (*models.Bed, error) {
	return r.get(ctx, id)
}

// Create stores a new bed. A bed only becomes occupied through an admission.
func (r *BedRepository) Create(ctx context.Context, bed *models.Bed) (*models.Bed, error) {
	if bed.Status == models.BedOccupied {
		return nil, fmt.Errorf("%w: a new bed cannot start occupied", ErrInvalidTransition)
	}
	if err := r.create(ctx, bed); err != nil {
		return nil, fmt.Errorf("failed to create bed: %w", err)
	}
	return r.get(ctx, bed.ID)
}

// Update writes the given columns. The status may not become occupied
// without an active assignment, nor leave occupied while one exists.
func (r *BedRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.Bed, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bed, err := lockBed(tx, id)
		if err != nil {
			return err
		}
		if status, ok := cols["status"].(string); ok && status != bed.Status {
			active, err := activeAssignments(tx, id)
			if err != nil {
				return err
			}
			if status == models.BedOccupied && active == 0 {
				return fmt.Errorf("%w: bed has no active assignment", ErrInvalidTransition)
			}
			if status != models.BedOccupied && active > 0 {
				return fmt.Errorf("%w: bed has an active assignment", ErrInvalidTransition)
			}
		}
		if len(cols) == 0 {
			return nil
		}
		return classify(tx.Model(&models.Bed{}).Where("id = ?", id).Updates(map[string]interface{}(cols)).Error)
	})
	if err != nil {
		return nil, err
	}
	return r.get(ctx, id)
}

// Delete removes a bed without an active assignment together with its
// discharged assignment history.
func (r *BedRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockBed(tx, id); err != nil {
			return err
		}
		active, err := activeAssignments(tx, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: bed has an active assignment", ErrHasDependents)
		}
		if err := tx.Where("bed_id = ?", id).Delete(&models.BedAssignment{}).Error; err != nil {
			return classifyDelete(err)
		}
		return classifyDelete(tx.Delete(&models.Bed{}, "id = ?", id).Error)
	})
}

// lockBed reads the bed row and holds it until the transaction ends.
func lockBed(tx *gorm.DB, id string) (*models.Bed, error) {
	var bed models.Bed
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&bed, "id = ?", id).Error; err != nil {
		return nil, classify(err)
	}
	return &bed, nil
}

func activeAssignments(tx *gorm.DB, bedID string) (int64, error) {
	var n int64
	err := tx.Model(&models.BedAssignment{}).
		Where("bed_id = ? AND status = ?", bedID, models.AssignmentActive).
		Count(&n).Error
	return n, classify(err)
}

func setBedStatus(tx *gorm.DB, id, status string) error {
	return classify(tx.Model(&models.Bed{}).Where("id = ?", id).Update("status", status).Error)
}
