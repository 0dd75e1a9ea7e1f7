package forms

import (
	"HospitalAdmin/models"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func oneOf(values []string, message string) validation.Rule {
	allowed := make([]interface{}, len(values))
	for i, v := range values {
		allowed[i] = v
	}
	return validation.In(allowed...).Error(message)
}

func enumMessage(field string, values []string) string {
	return field + " must be one of " + strings.Join(values, ", ")
}

// dateTime accepts empty values and anything models.ParseDateTime reads.
func dateTime(message string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := models.ParseDateTime(s); err != nil {
			return errors.New(message)
		}
		return nil
	})
}

var nonNegative = validation.Min(models.Number(0)).Error("Price cannot be negative")

func ValidatePatient(in models.PatientInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required.Error("First name is required")),
		validation.Field(&in.LastName, validation.Required.Error("Last name is required")),
		validation.Field(&in.DateOfBirth, validation.Date(models.DateLayout).Error("Date of birth must be a valid date")),
		validation.Field(&in.Gender, oneOf(models.Genders, enumMessage("Gender", models.Genders))),
		validation.Field(&in.Email, is.EmailFormat.Error("Email must be a valid email address")),
		validation.Field(&in.PatientType, oneOf(models.PatientTypes, enumMessage("Patient type", models.PatientTypes))),
	)
}

func ValidateAppointment(in models.AppointmentInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.PatientID, validation.Required.Error("Patient is required"), is.UUID.Error("Patient is required")),
		validation.Field(&in.DoctorID, is.UUID.Error("Doctor must be a staff member")),
		validation.Field(&in.AppointmentDate,
			validation.Required.Error("Appointment date is required"),
			dateTime("Appointment date must be a valid date and time")),
		validation.Field(&in.Status,
			validation.Required.Error("Status is required"),
			oneOf(models.AppointmentStatuses, enumMessage("Status", models.AppointmentStatuses))),
	)
}

func ValidateStaff(in models.StaffInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Name is required")),
		validation.Field(&in.Department, validation.Required.Error("Department is required")),
		validation.Field(&in.Designation, validation.Required.Error("Role is required")),
		validation.Field(&in.Email,
			validation.Required.Error("Email is required"),
			is.EmailFormat.Error("Email must be a valid email address")),
		validation.Field(&in.JoiningDate,
			validation.Required.Error("Joining date is required"),
			validation.Date(models.DateLayout).Error("Joining date must be a valid date")),
		validation.Field(&in.Status,
			validation.Required.Error("Status is required"),
			oneOf(models.StaffStatuses, enumMessage("Status", models.StaffStatuses))),
	)
}

func ValidateWard(in models.WardInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Ward name is required")),
		// zero counts as empty for Min, so Required rejects it
		validation.Field(&in.Capacity,
			validation.Required.Error("Capacity must be at least 1"),
			validation.Min(models.Number(1)).Error("Capacity must be at least 1")),
	)
}

func ValidateBed(in models.BedInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BedNumber, validation.Required.Error("Bed number is required")),
		validation.Field(&in.WardID, validation.Required.Error("Ward is required"), is.UUID.Error("Ward is required")),
		validation.Field(&in.Status,
			validation.Required.Error("Status is required"),
			oneOf(models.BedStatuses, enumMessage("Status", models.BedStatuses))),
	)
}

func ValidateBedAssignment(in models.BedAssignmentInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.BedID, validation.Required.Error("Bed is required"), is.UUID.Error("Bed is required")),
		validation.Field(&in.PatientID, validation.Required.Error("Patient is required"), is.UUID.Error("Patient is required")),
		validation.Field(&in.AdmissionDate, dateTime("Admission date must be a valid date and time")),
		validation.Field(&in.ExpectedDischargeDate, dateTime("Expected discharge date must be a valid date and time")),
	)
}

func ValidateLabTest(in models.LabTestInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Test name is required")),
		validation.Field(&in.Price, nonNegative),
	)
}

func ValidateMedication(in models.MedicationInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("Medication name is required")),
		validation.Field(&in.Price, nonNegative),
	)
}
