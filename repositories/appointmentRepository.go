package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	table[models.Appointment]
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{table: table[models.Appointment]{db: db, preloads: []string{"Patient", "Doctor"}}}
}

// List returns appointments in date order with patient and doctor embedded.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := r.session(ctx).
		Scopes(
			appointmentSearch(filter.Search),
			dayRange("appointment_date", filter.StartDate, filter.EndDate),
			eqID("doctor_id", filter.DoctorID),
			eqID("patient_id", filter.PatientID),
			eq("status", filter.Status),
		).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", classify(err))
	}
	return appointments, nil
}

// appointmentSearch matches the purpose, the doctor's name or the patient's name.
func appointmentSearch(term string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term = strings.TrimSpace(term)
		if term == "" {
			return db
		}
		pattern := likePattern(term)
		return db.Where(
			"(purpose ILIKE ? OR doctor_name ILIKE ? OR patient_id IN (SELECT id FROM patients WHERE first_name ILIKE ? OR last_name ILIKE ?))",
			pattern, pattern, pattern, pattern,
		)
	}
}

func (r *AppointmentRepository) Get(ctx context.Context, id string) (*models.Appointment, error) {
	return r.get(ctx, id)
}

// Create stores the appointment and returns it with patient and doctor loaded.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if err := r.create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return r.get(ctx, appointment.ID)
}

func (r *AppointmentRepository) Update(ctx context.Context, id string, cols models.Columns) (*models.Appointment, error) {
	return r.update(ctx, id, cols)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, id)
}
