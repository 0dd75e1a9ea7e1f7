package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
)

var (
	labTestRules    = rules{repositories.ErrConflict: "A lab test with this name already exists"}
	medicationRules = rules{repositories.ErrConflict: "A medication with this name already exists"}
)

type LabTestService struct {
	store    LabTestStore
	notifier notify.Notifier
}

func NewLabTestService(store LabTestStore, notifier notify.Notifier) *LabTestService {
	return &LabTestService{store: store, notifier: notifier}
}

func (s *LabTestService) List(ctx context.Context, filter models.CatalogFilter) ([]models.LabTest, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch lab tests", rows, err)
}

func (s *LabTestService) Get(ctx context.Context, id string) (*models.LabTest, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch lab test details", row, err)
}

func (s *LabTestService) Create(ctx context.Context, in models.LabTestInput) (*models.LabTest, error) {
	test := in.Model()
	if err := s.store.Create(ctx, test); err != nil {
		return nil, labTestRules.explain(err)
	}
	return test, nil
}

func (s *LabTestService) Update(ctx context.Context, id string, cols models.Columns) (*models.LabTest, error) {
	test, err := s.store.Update(ctx, id, cols)
	return test, labTestRules.explain(err)
}

func (s *LabTestService) Delete(ctx context.Context, id string) error {
	return labTestRules.explain(s.store.Delete(ctx, id))
}

type MedicationService struct {
	store    MedicationStore
	notifier notify.Notifier
}

func NewMedicationService(store MedicationStore, notifier notify.Notifier) *MedicationService {
	return &MedicationService{store: store, notifier: notifier}
}

func (s *MedicationService) List(ctx context.Context, filter models.CatalogFilter) ([]models.Medication, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch medications", rows, err)
}

func (s *MedicationService) Get(ctx context.Context, id string) (*models.Medication, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch medication details", row, err)
}

func (s *MedicationService) Create(ctx context.Context, in models.MedicationInput) (*models.Medication, error) {
	medication := in.Model()
	if err := s.store.Create(ctx, medication); err != nil {
		return nil, medicationRules.explain(err)
	}
	return medication, nil
}

func (s *MedicationService) Update(ctx context.Context, id string, cols models.Columns) (*models.Medication, error) {
	medication, err := s.store.Update(ctx, id, cols)
	return medication, medicationRules.explain(err)
}

func (s *MedicationService) Delete(ctx context.Context, id string) error {
	return medicationRules.explain(s.store.Delete(ctx, id))
}
