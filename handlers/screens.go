package handlers

import (
	"HospitalAdmin/forms"
	"HospitalAdmin/models"
	"HospitalAdmin/notify"
	"HospitalAdmin/querystate"
	"HospitalAdmin/services"
	"HospitalAdmin/workflow"
	"time"
)

// Listing names in the query cache. A mutation refetches every listing
// whose rows or figures it can change.
const (
	PatientsEntity       = "patients"
	AppointmentsEntity   = "appointments"
	StaffEntity          = "staff"
	WardsEntity          = "wards"
	BedsEntity           = "beds"
	BedAssignmentsEntity = "bed-assignments"
	LabTestsEntity       = "laboratory"
	MedicationsEntity    = "medications"
)

// OccupancyRefetch lists what changes when a bed is taken or freed.
var OccupancyRefetch = []string{BedAssignmentsEntity, BedsEntity, WardsEntity, DashboardEntity}

// Screens bundles every entity screen.
type Screens struct {
	Patients       *ScreenHandler[models.Patient, models.PatientInput, models.PatientFilter]
	Appointments   *ScreenHandler[models.Appointment, models.AppointmentInput, models.AppointmentFilter]
	Staff          *ScreenHandler[models.Staff, models.StaffInput, models.StaffFilter]
	Wards          *ScreenHandler[models.Ward, models.WardInput, models.WardFilter]
	Beds           *ScreenHandler[models.Bed, models.BedInput, models.BedFilter]
	BedAssignments *ScreenHandler[models.BedAssignment, models.BedAssignmentInput, models.BedAssignmentFilter]
	LabTests       *ScreenHandler[models.LabTest, models.LabTestInput, models.CatalogFilter]
	Medications    *ScreenHandler[models.Medication, models.MedicationInput, models.CatalogFilter]
}

// Facades are the services the screens drive.
type Facades struct {
	Patients       *services.PatientService
	Appointments   *services.AppointmentService
	Staff          *services.StaffService
	Wards          *services.WardService
	Beds           *services.BedService
	BedAssignments *services.BedAssignmentService
	LabTests       *services.LabTestService
	Medications    *services.MedicationService
}

func messages(done, failed string) workflow.Messages {
	return workflow.Messages{
		Created:      done + " created successfully",
		Updated:      done + " updated successfully",
		Deleted:      done + " deleted successfully",
		CreateFailed: "Failed to create " + failed,
		UpdateFailed: "Failed to update " + failed,
		DeleteFailed: "Failed to delete " + failed,
	}
}

func NewScreens(f Facades, query *querystate.Client, notifier notify.Notifier, dialogIdle time.Duration) *Screens {
	staffMessages := workflow.Messages{
		Created:      "Staff member added successfully",
		Updated:      "Staff information updated successfully",
		Deleted:      "Staff member removed successfully",
		CreateFailed: "Failed to add staff member",
		UpdateFailed: "Failed to update staff information",
		DeleteFailed: "Failed to remove staff member",
	}
	appointmentMessages := messages("Appointment", "appointment")
	appointmentMessages.Created = "Appointment scheduled successfully"

	return &Screens{
		Patients: NewScreenHandler(ScreenConfig[models.Patient, models.PatientInput, models.PatientFilter]{
			Entity: PatientsEntity,
			Noun:   "patient",
			List:   f.Patients.List,
			Get:    f.Patients.Get,
			Input:  models.Patient.Input,
			Dialog: workflow.Config[models.Patient, models.PatientInput]{
				Schema:   forms.ValidatePatient,
				Actions:  workflow.Actions[models.Patient, models.PatientInput]{Create: f.Patients.Create, Update: f.Patients.Update, Delete: f.Patients.Delete},
				Messages: messages("Patient", "patient"),
				Refetch:  []string{PatientsEntity, AppointmentsEntity, BedAssignmentsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		Appointments: NewScreenHandler(ScreenConfig[models.Appointment, models.AppointmentInput, models.AppointmentFilter]{
			Entity: AppointmentsEntity,
			Noun:   "appointment",
			List:   f.Appointments.List,
			Get:    f.Appointments.Get,
			Input:  models.Appointment.Input,
			Dialog: workflow.Config[models.Appointment, models.AppointmentInput]{
				Schema:   forms.ValidateAppointment,
				Actions:  workflow.Actions[models.Appointment, models.AppointmentInput]{Create: f.Appointments.Create, Update: f.Appointments.Update, Delete: f.Appointments.Delete},
				Messages: appointmentMessages,
				Refetch:  []string{AppointmentsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		Staff: NewScreenHandler(ScreenConfig[models.Staff, models.StaffInput, models.StaffFilter]{
			Entity: StaffEntity,
			Noun:   "staff member",
			List:   f.Staff.List,
			Get:    f.Staff.Get,
			Input:  models.Staff.Input,
			Dialog: workflow.Config[models.Staff, models.StaffInput]{
				Schema:   forms.ValidateStaff,
				Actions:  workflow.Actions[models.Staff, models.StaffInput]{Create: f.Staff.Create, Update: f.Staff.Update, Delete: f.Staff.Delete},
				Messages: staffMessages,
				Refetch:  []string{StaffEntity, AppointmentsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		Wards: NewScreenHandler(ScreenConfig[models.Ward, models.WardInput, models.WardFilter]{
			Entity: WardsEntity,
			Noun:   "ward",
			List:   f.Wards.List,
			Get:    f.Wards.Get,
			Input:  models.Ward.Input,
			Dialog: workflow.Config[models.Ward, models.WardInput]{
				Schema:   forms.ValidateWard,
				Actions:  workflow.Actions[models.Ward, models.WardInput]{Create: f.Wards.Create, Update: f.Wards.Update, Delete: f.Wards.Delete},
				Messages: messages("Ward", "ward"),
				Refetch:  []string{WardsEntity, BedsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		Beds: NewScreenHandler(ScreenConfig[models.Bed, models.BedInput, models.BedFilter]{
			Entity: BedsEntity,
			Noun:   "bed",
			List:   f.Beds.List,
			Get:    f.Beds.Get,
			Input:  models.Bed.Input,
			Dialog: workflow.Config[models.Bed, models.BedInput]{
				Schema:   forms.ValidateBed,
				Actions:  workflow.Actions[models.Bed, models.BedInput]{Create: f.Beds.Create, Update: f.Beds.Update, Delete: f.Beds.Delete},
				Messages: messages("Bed", "bed"),
				Refetch:  []string{BedsEntity, WardsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		BedAssignments: NewScreenHandler(ScreenConfig[models.BedAssignment, models.BedAssignmentInput, models.BedAssignmentFilter]{
			Entity: BedAssignmentsEntity,
			Noun:   "bed assignment",
			List:   f.BedAssignments.List,
			Get:    f.BedAssignments.Get,
			Input:  models.BedAssignment.Input,
			Dialog: workflow.Config[models.BedAssignment, models.BedAssignmentInput]{
				Schema:   forms.ValidateBedAssignment,
				Actions:  workflow.Actions[models.BedAssignment, models.BedAssignmentInput]{Create: f.BedAssignments.Create, Update: f.BedAssignments.Update, Delete: f.BedAssignments.Delete},
				Messages: messages("Bed assignment", "bed assignment"),
				Refetch:  OccupancyRefetch,
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		LabTests: NewScreenHandler(ScreenConfig[models.LabTest, models.LabTestInput, models.CatalogFilter]{
			Entity: LabTestsEntity,
			Noun:   "lab test",
			List:   f.LabTests.List,
			Get:    f.LabTests.Get,
			Input:  models.LabTest.Input,
			Dialog: workflow.Config[models.LabTest, models.LabTestInput]{
				Schema:   forms.ValidateLabTest,
				Actions:  workflow.Actions[models.LabTest, models.LabTestInput]{Create: f.LabTests.Create, Update: f.LabTests.Update, Delete: f.LabTests.Delete},
				Messages: messages("Lab test", "lab test"),
				Refetch:  []string{LabTestsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
		Medications: NewScreenHandler(ScreenConfig[models.Medication, models.MedicationInput, models.CatalogFilter]{
			Entity: MedicationsEntity,
			Noun:   "medication",
			List:   f.Medications.List,
			Get:    f.Medications.Get,
			Input:  models.Medication.Input,
			Dialog: workflow.Config[models.Medication, models.MedicationInput]{
				Schema:   forms.ValidateMedication,
				Actions:  workflow.Actions[models.Medication, models.MedicationInput]{Create: f.Medications.Create, Update: f.Medications.Update, Delete: f.Medications.Delete},
				Messages: messages("Medication", "medication"),
				Refetch:  []string{MedicationsEntity, DashboardEntity},
				Notifier: notifier,
				Describe: services.Describe,
			},
		}, query, dialogIdle),
	}
}
