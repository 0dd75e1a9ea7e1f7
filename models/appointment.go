package models

import (
	"fmt"
	"time"
)

// Appointment statuses
const (
	AppointmentScheduled  = "scheduled"
	AppointmentCompleted  = "completed"
	AppointmentCancelled  = "cancelled"
	AppointmentInProgress = "inProgress"
)

var AppointmentStatuses = []string{
	AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentInProgress,
}

// Appointment model
type Appointment struct {
	Base
	PatientID       string    `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	DoctorID        *string   `gorm:"column:doctor_id;type:uuid;index" json:"doctor_id"`
	DoctorName      *string   `gorm:"column:doctor_name" json:"doctor_name"`
	AppointmentDate time.Time `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	Purpose         string    `gorm:"column:purpose" json:"purpose"`
	Status          string    `gorm:"column:status;not null;check:status IN ('scheduled', 'completed', 'cancelled', 'inProgress')" json:"status"`
	Notes           *string   `gorm:"column:notes" json:"notes"`
	Patient         *Patient  `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor          *Staff    `gorm:"foreignKey:DoctorID;references:ID;constraint:OnDelete:SET NULL" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Layouts accepted for appointment dates, most specific first.
var dateTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

// ParseDateTime reads a date-time as sent by a datetime-local input or RFC 3339.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", s)
}

// AppointmentInput is the draft an appointment form submits.
type AppointmentInput struct {
	PatientID       string `json:"patient_id"`
	DoctorID        string `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date"`
	Purpose         string `json:"purpose"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

func (in AppointmentInput) Columns() Columns {
	when, _ := ParseDateTime(in.AppointmentDate)
	return Columns{
		"patient_id":       in.PatientID,
		"doctor_id":        nullable(in.DoctorID),
		"doctor_name":      nullable(in.DoctorName),
		"appointment_date": when,
		"purpose":          in.Purpose,
		"status":           in.Status,
		"notes":            nullable(in.Notes),
	}
}

func (in AppointmentInput) Model() *Appointment {
	when, _ := ParseDateTime(in.AppointmentDate)
	return &Appointment{
		PatientID:       in.PatientID,
		DoctorID:        nullable(in.DoctorID),
		DoctorName:      nullable(in.DoctorName),
		AppointmentDate: when,
		Purpose:         in.Purpose,
		Status:          in.Status,
		Notes:           nullable(in.Notes),
	}
}

func (a Appointment) Input() AppointmentInput {
	return AppointmentInput{
		PatientID:       a.PatientID,
		DoctorID:        value(a.DoctorID),
		DoctorName:      value(a.DoctorName),
		AppointmentDate: a.AppointmentDate.UTC().Format("2006-01-02T15:04"),
		Purpose:         a.Purpose,
		Status:          a.Status,
		Notes:           value(a.Notes),
	}
}

// AppointmentFilter narrows an appointment listing. Dates are inclusive days.
type AppointmentFilter struct {
	Search    string `form:"search"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	DoctorID  string `form:"doctor_id"`
	PatientID string `form:"patient_id"`
	Status    string `form:"status"`
}

func (f AppointmentFilter) Values() map[string]string {
	return map[string]string{
		"search":     f.Search,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
		"doctor_id":  f.DoctorID,
		"patient_id": f.PatientID,
		"status":     f.Status,
	}
}
