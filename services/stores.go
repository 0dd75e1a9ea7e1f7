package services

import (
	"HospitalAdmin/models"
	"context"
	"time"
)

// The stores are the repository operations the facades depend on.

type PatientStore interface {
	List(ctx context.Context, filter models.PatientFilter) ([]models.Patient, error)
	Get(ctx context.Context, id string) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, id string, cols models.Columns) (*models.Patient, error)
	Delete(ctx context.Context, id string) error
}

type AppointmentStore interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	Get(ctx context.Context, id string) (*models.Appointment, error)
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, id string, cols models.Columns) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type StaffStore interface {
	List(ctx context.Context, filter models.StaffFilter) ([]models.Staff, error)
	Get(ctx context.Context, id string) (*models.Staff, error)
	Create(ctx context.Context, member *models.Staff) error
	Update(ctx context.Context, id string, cols models.Columns) (*models.Staff, error)
	Delete(ctx context.Context, id string) error
}

type WardStore interface {
	List(ctx context.Context, filter models.WardFilter) ([]models.Ward, error)
	Get(ctx context.Context, id string) (*models.Ward, error)
	Create(ctx context.Context, ward *models.Ward) error
	Update(ctx context.Context, id string, cols models.Columns) (*models.Ward, error)
	Delete(ctx context.Context, id string) error
}

type BedStore interface {
	List(ctx context.Context, filter models.BedFilter) ([]models.Bed, error)
	Get(ctx context.Context, id string) (*models.Bed, error)
	Create(ctx context.Context, bed *models.Bed) (*models.Bed, error)
	Update(ctx context.Context, id string, cols models.Columns) (*models.Bed, error)
	Delete(ctx context.Context, id string) error
}

type BedAssignmentStore interface {
	List(ctx context.Context, filter models.BedAssignmentFilter) ([]models.BedAssignment, error)
	Get(ctx context.Context, id string) (*models.BedAssignment, error)
	Admit(ctx context.Context, assignment *models.BedAssignment) (*models.BedAssignment, error)
	Update(ctx context.Context, id string, cols models.Columns) (*models.BedAssignment, error)
	Transfer(ctx context.Context, id, bedID string) (*models.BedAssignment, error)
	Discharge(ctx context.Context, id string, at time.Time) (*models.BedAssignment, error)
	Delete(ctx context.Context, id string) error
}

type LabTestStore interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.LabTest, error)
	Get(ctx context.Context, id string) (*models.LabTest, error)
	Create(ctx context.Context, test *models.LabTest) error
	Update(ctx context.Context, id string, cols models.Columns) (*models.LabTest, error)
	Delete(ctx context.Context, id string) error
}

type MedicationStore interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Medication, error)
	Get(ctx context.Context, id string) (*models.Medication, error)
	Create(ctx context.Context, medication *models.Medication) error
	Update(ctx context.Context, id string, cols models.Columns) (*models.Medication, error)
	Delete(ctx context.Context, id string) error
}

type CountStore interface {
	Counts(ctx context.Context, now time.Time) (models.DashboardCounts, error)
}
