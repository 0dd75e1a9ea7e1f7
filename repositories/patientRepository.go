package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type PatientRepository struct {
	table[models.Patient]
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{table: table[models.Patient]{db: db}}
}

// List returns patients newest first. Search matches first name, last name
// or email.
func (r *PatientRepository) List(ctx context.Context, filter models.PatientFilter) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := r.db.WithContext(ctx).
		Scopes(
			ilikeAny(filter.Search, "first_name", "last_name", "email"),
			eq("patient_type", filter.PatientType),
		).
		Order("created_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", classify(err))
	}
	return patients, nil
}

func (r *PatientRepository) Get(ctx context.Context, id string) (*models.Patient, error) {
	return r.get(ctx, id)
}

func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.create(ctx, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.Patient, error) {
	return r.update(ctx, id, cols)
}

// Delete removes the patient and, through the foreign key, their
// appointments. A patient with bed assignments cannot be deleted.
func (r *PatientRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
