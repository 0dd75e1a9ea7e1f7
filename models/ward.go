package models

import "time"

// Bed statuses
const (
	BedAvailable   = "available"
	BedOccupied    = "occupied"
	BedMaintenance = "maintenance"
)

var BedStatuses = []string{BedAvailable, BedOccupied, BedMaintenance}

// Bed assignment statuses
const (
	AssignmentActive     = "active"
	AssignmentDischarged = "discharged"
)

var AssignmentStatuses = []string{AssignmentActive, AssignmentDischarged}

// Ward model
type Ward struct {
	Base
	Name        string  `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Capacity    int     `gorm:"column:capacity;not null;check:capacity >= 1" json:"capacity"`
	Description *string `gorm:"column:description" json:"description"`
	Beds        []Bed   `gorm:"foreignKey:WardID;references:ID;constraint:OnDelete:RESTRICT" json:"-"`

	// Read-only counts filled in by listings.
	BedCount      int64 `gorm:"column:bed_count;->;-:migration" json:"bed_count"`
	OccupiedCount int64 `gorm:"column:occupied_count;->;-:migration" json:"occupied_count"`
}

func (Ward) TableName() string {
	return "wards"
}

// WardInput is the draft a ward form submits.
type WardInput struct {
	Name        string `json:"name"`
	Capacity    Number `json:"capacity"`
	Description string `json:"description"`
}

func (in WardInput) Columns() Columns {
	return Columns{
		"name":        in.Name,
		"capacity":    in.Capacity.Int(),
		"description": nullable(in.Description),
	}
}

func (in WardInput) Model() *Ward {
	return &Ward{
		Name:        in.Name,
		Capacity:    in.Capacity.Int(),
		Description: nullable(in.Description),
	}
}

func (w Ward) Input() WardInput {
	return WardInput{Name: w.Name, Capacity: Number(w.Capacity), Description: value(w.Description)}
}

// WardFilter narrows a ward listing.
type WardFilter struct {
	Search string `form:"search"`
}

func (f WardFilter) Values() map[string]string {
	return map[string]string{"search": f.Search}
}

// Bed model
type Bed struct {
	Base
	WardID    string  `gorm:"column:ward_id;type:uuid;not null;uniqueIndex:idx_ward_bed_number" json:"ward_id"`
	BedNumber string  `gorm:"column:bed_number;not null;uniqueIndex:idx_ward_bed_number" json:"bed_number"`
	Status    string  `gorm:"column:status;not null;check:status IN ('available', 'occupied', 'maintenance')" json:"status"`
	Notes     *string `gorm:"column:notes" json:"notes"`
	Ward      *Ward   `gorm:"foreignKey:WardID;references:ID" json:"ward,omitempty"`
}

func (Bed) TableName() string {
	return "beds"
}

// BedInput is the draft a bed form submits.
type BedInput struct {
	BedNumber string `json:"bed_number"`
	WardID    string `json:"ward_id"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (in BedInput) Columns() Columns {
	return Columns{
		"bed_number": in.BedNumber,
		"ward_id":    in.WardID,
		"status":     in.Status,
		"notes":      nullable(in.Notes),
	}
}

func (in BedInput) Model() *Bed {
	return &Bed{
		BedNumber: in.BedNumber,
		WardID:    in.WardID,
		Status:    in.Status,
		Notes:     nullable(in.Notes),
	}
}

func (b Bed) Input() BedInput {
	return BedInput{BedNumber: b.BedNumber, WardID: b.WardID, Status: b.Status, Notes: value(b.Notes)}
}

// BedFilter narrows a bed listing.
type BedFilter struct {
	WardID string `form:"ward_id"`
	Status string `form:"status"`
	Search string `form:"search"`
}

func (f BedFilter) Values() map[string]string {
	return map[string]string{"ward_id": f.WardID, "status": f.Status, "search": f.Search}
}

// BedAssignment records a patient occupying a bed. A bed is occupied exactly
// while it has an active assignment.
type BedAssignment struct {
	Base
	BedID                 string     `gorm:"column:bed_id;type:uuid;not null;index" json:"bed_id"`
	PatientID             string     `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`
	AdmissionDate         time.Time  `gorm:"column:admission_date;not null" json:"admission_date"`
	ExpectedDischargeDate *time.Time `gorm:"column:expected_discharge_date" json:"expected_discharge_date"`
	ActualDischargeDate   *time.Time `gorm:"column:actual_discharge_date" json:"actual_discharge_date"`
	Status                string     `gorm:"column:status;not null;index;check:status IN ('active', 'discharged')" json:"status"`
	Notes                 *string    `gorm:"column:notes" json:"notes"`
	Patient               *Patient   `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:RESTRICT" json:"patient,omitempty"`
	Bed                   *Bed       `gorm:"foreignKey:BedID;references:ID;constraint:OnDelete:RESTRICT" json:"bed,omitempty"`
}

func (BedAssignment) TableName() string {
	return "bed_assignments"
}

// BedAssignmentInput is the draft an admission form submits.
type BedAssignmentInput struct {
	BedID                 string `json:"bed_id"`
	PatientID             string `json:"patient_id"`
	AdmissionDate         string `json:"admission_date"`
	ExpectedDischargeDate string `json:"expected_discharge_date"`
	Notes                 string `json:"notes"`
}

func (in BedAssignmentInput) Columns() Columns {
	return Columns{
		"bed_id":                  in.BedID,
		"patient_id":              in.PatientID,
		"admission_date":          optionalTime(in.AdmissionDate),
		"expected_discharge_date": optionalTime(in.ExpectedDischargeDate),
		"notes":                   nullable(in.Notes),
	}
}

// Model builds an active assignment; an empty admission date means now.
func (in BedAssignmentInput) Model() *BedAssignment {
	admitted := time.Now().UTC()
	if t := optionalTime(in.AdmissionDate); t != nil {
		admitted = *t
	}
	return &BedAssignment{
		BedID:                 in.BedID,
		PatientID:             in.PatientID,
		AdmissionDate:         admitted,
		ExpectedDischargeDate: optionalTime(in.ExpectedDischargeDate),
		Status:                AssignmentActive,
		Notes:                 nullable(in.Notes),
	}
}

func (a BedAssignment) Input() BedAssignmentInput {
	in := BedAssignmentInput{
		BedID:         a.BedID,
		PatientID:     a.PatientID,
		AdmissionDate: a.AdmissionDate.UTC().Format("2006-01-02T15:04"),
		Notes:         value(a.Notes),
	}
	if a.ExpectedDischargeDate != nil {
		in.ExpectedDischargeDate = a.ExpectedDischargeDate.UTC().Format("2006-01-02T15:04")
	}
	return in
}

// BedAssignmentFilter narrows an assignment listing.
type BedAssignmentFilter struct {
	Status    string `form:"status"`
	BedID     string `form:"bed_id"`
	PatientID string `form:"patient_id"`
}

func (f BedAssignmentFilter) Values() map[string]string {
	return map[string]string{"status": f.Status, "bed_id": f.BedID, "patient_id": f.PatientID}
}

func optionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		if d, derr := time.Parse(DateLayout, s); derr == nil {
			return &d
		}
		return nil
	}
	return &t
}
