package services

import (
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/repositories"
	"context"
)

var appointmentRules = rules{
	repositories.ErrInvalidReference: "Selected patient or doctor does not exist",
}

// Confirmer tells a patient about a newly scheduled appointment.
type Confirmer interface {
	SendAppointmentConfirmation(ctx context.Context, patient models.Patient, appointment models.Appointment)
}

type AppointmentService struct {
	store     AppointmentStore
	notifier  notify.Notifier
	confirmer Confirmer
}

// NewAppointmentService builds the facade. confirmer may be nil.
func NewAppointmentService(store AppointmentStore, notifier notify.Notifier, confirmer Confirmer) *AppointmentService {
	return &AppointmentService{store: store, notifier: notifier, confirmer: confirmer}
}

func (s *AppointmentService) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	rows, err := s.store.List(ctx, filter)
	return listed(ctx, s.notifier, "Failed to fetch appointments", rows, err)
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	row, err := s.store.Get(ctx, id)
	return fetched(ctx, s.notifier, "Failed to fetch appointment details", row, err)
}

// Create schedules the appointment and, for scheduled ones, mails the
// patient a confirmation.
func (s *AppointmentService) Create(ctx context.Context, in models.AppointmentInput) (*models.Appointment, error) {
	appointment, err := s.store.Create(ctx, in.Model())
	if err != nil {
		return nil, appointmentRules.explain(err)
	}
	if s.confirmer != nil && appointment.Patient != nil && appointment.Status == models.AppointmentScheduled {
		s.confirmer.SendAppointmentConfirmation(ctx, *appointment.Patient, *appointment)
	}
	return appointment, nil
}

func (s *AppointmentService) Update(ctx context.Context, id string, cols models.Columns) (*models.Appointment, error) {
	appointment, err := s.store.Update(ctx, id, cols)
	return appointment, appointmentRules.explain(err)
}

func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	return appointmentRules.explain(s.store.Delete(ctx, id))
}
