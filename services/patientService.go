package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
)

var patientRules = rules{
	repositories.ErrHasDependents: "Cannot delete patient with bed assignments",
}

type PatientService struct {
	store    PatientStore
	notifier notify.Notifier
}

func NewPatientService(store PatientStore, notifier notify.Notifier) *PatientService {
	return &PatientService{store: store, notifier: notifier}
}

func (s *PatientService) List(ctx context.Context, filter models.PatientFilter) ([]models.Patient, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch patients", rows, err)
}

func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch patient details", row, err)
}

func (s *PatientService) Create(ctx context.Context, in models.PatientInput) (*models.Patient, error) {
	patient := in.Model()
	if err := s.store.Create(ctx, patient); err != nil {
		return nil, patientRules.explain(err)
	}
	return patient, nil
}

func (s *PatientService) Update(ctx context.Context, id string, cols models.Columns) (*models.Patient, error) {
	patient, err := s.store.Update(ctx, id, cols)
	return patient, patientRules.explain(err)
}

func (s *PatientService) Delete(ctx context.Context, id string) error {
	return patientRules.explain(s.store.Delete(ctx, id))
}
