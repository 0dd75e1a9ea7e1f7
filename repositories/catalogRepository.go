package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type LabTestRepository struct {
	table[models.LabTest]
}

func NewLabTestRepository(db *gorm.DB) *LabTestRepository {
	return &LabTestRepository{table: table[models.LabTest]{db: db}}
}

func (r *LabTestRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.LabTest, error) {
	tests := []models.LabTest{}
	err := r.db.WithContext(ctx).
		Scopes(ilikeAny(filter.Search, "name", "description")).
		Order("name ASC").
		Find(&tests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list lab tests: %w", classify(err))
	}
	return tests, nil
}

func (r *LabTestRepository) Get(ctx context.Context, id string) (*models.LabTest, error) {
	return r.get(ctx, id)
}

func (r *LabTestRepository) Create(ctx context.Context, test *models.LabTest) error {
	if err := r.create(ctx, test); err != nil {
		return fmt.Errorf("failed to create lab test: %w", err)
	}
	return nil
}

func (r *LabTestRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.LabTest, error) {
	return r.update(ctx, id, cols)
}

func (r *LabTestRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}

type MedicationRepository struct {
	table[models.Medication]
}

func NewMedicationRepository(db *gorm.DB) *MedicationRepository {
	return &MedicationRepository{table: table[models.Medication]{db: db}}
}

func (r *MedicationRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Medication, error) {
	medications := []models.Medication{}
	err := r.db.WithContext(ctx).
		Scopes(ilikeAny(filter.Search, "name", "description", "dosage")).
		Order("name ASC").
		Find(&medications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", classify(err))
	}
	return medications, nil
}

func (r *MedicationRepository) Get(ctx context.Context, id string) (*models.Medication, error) {
	return r.get(ctx, id)
}

func (r *MedicationRepository) Create(ctx context.Context, medication *models.Medication) error {
	if err := r.create(ctx, medication); err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *MedicationRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.Medication, error) {
	return r.update(ctx, id, cols)
}

func (r *MedicationRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
