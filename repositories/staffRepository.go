package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type StaffRepository struct {
	table[models.Staff]
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{table: table[models.Staff]{db: db}}
}

// List returns staff members by name. Role matches the designation exactly.
func (r *StaffRepository) List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error) {
	staff := []models.Staff{}
	err := r.db.WithContext(ctx).
		Scopes(
			ilikeAny(filter.Search, "name", "email", "department"),
			eq("designation", filter.Role),
			eq("status", filter.Status),
		).
		Order("name ASC").
		Find(&staff).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", classify(err))
	}
	return staff, nil
}

func (r *StaffRepository) Get(ctx context.Context, id string) (*models.Staff, error) {
	return r.get(ctx, id)
}

func (r *StaffRepository) Create(ctx context.Context, member *models.Staff) error {
	if err := r.create(ctx, member); err != nil {
		return fmt.Errorf("failed to create staff member: %w", err)
	}
	return nil
}

func (r *StaffRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.Staff, error) {
	return r.update(ctx, id, cols)
}

// Delete removes the staff member. Appointments keep their doctor name and
// lose the doctor reference.
func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
