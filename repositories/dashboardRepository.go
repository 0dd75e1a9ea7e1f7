package repositories

import (
	"HospitalAdmin/models"
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts gathers the figures behind the dashboard. Appointments today are
// counted for the UTC day containing now and exclude cancelled ones.
func (r *DashboardRepository) Counts(ctx context.Context, now time.Time) (models.DashboardCounts, error) {
	var counts models.DashboardCounts
	db := r.db.WithContext(ctx)

	day := now.UTC().Truncate(24 * time.Hour)
	queries := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"patients", db.Model(&models.Patient{}), &counts.Patients},
		{"occupied beds", db.Model(&models.Bed{}).Where("status = ?", models.BedOccupied), &counts.BedsOccupied},
		{"available beds", db.Model(&models.Bed{}).Where("status = ?", models.BedAvailable), &counts.BedsAvailable},
		{"appointments today", db.Model(&models.Appointment{}).
			Where("appointment_date >= ? AND appointment_date < ?", day, day.Add(24*time.Hour)).
			Where("status <> ?", models.AppointmentCancelled), &counts.AppointmentsToday},
		{"doctors on duty", db.Model(&models.Staff{}).
			Where("designation = ? AND status = ?", models.DesignationDoctor, models.StaffActive), &counts.DoctorsOnDuty},
		{"nurses on duty", db.Model(&models.Staff{}).
			Where("designation = ? AND status = ?", models.DesignationNurse, models.StaffActive), &counts.NursesOnDuty},
		{"lab tests", db.Model(&models.LabTest{}), &counts.LabTests},
		{"medications", db.Model(&models.Medication{}), &counts.Medications},
		{"icu beds", db.Model(&models.Bed{}).Where("ward_id IN (?)", icuWards(db)), &counts.ICUBeds},
		{"occupied icu beds", db.Model(&models.Bed{}).
			Where("ward_id IN (?) AND status = ?", icuWards(db), models.BedOccupied), &counts.ICUBedsOccupied},
	}
	for _, q := range queries {
		if err := q.query.Count(q.dest).Error; err != nil {
			return models.DashboardCounts{}, fmt.Errorf("failed to count %s: %w", q.name, classify(err))
		}
	}
	return counts, nil
}

// icuWards selects the ids of intensive care wards, recognised by name.
func icuWards(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Ward{}).Select("id").
		Where("name ILIKE ? OR name ILIKE ?", "%ICU%", "%intensive care%")
}
