package models

// Patient genders
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Patient types
const (
	PatientTypeInpatient  = "inpatient"
	PatientTypeOutpatient = "outpatient"
)

var (
	Genders      = []string{GenderMale, GenderFemale, GenderOther}
	PatientTypes = []string{PatientTypeInpatient, PatientTypeOutpatient}
)

// Patient model
type Patient struct {
	Base
	FirstName     string  `gorm:"column:first_name;not null" json:"first_name"`
	LastName      string  `gorm:"column:last_name;not null;index" json:"last_name"`
	DateOfBirth   *string `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
	Gender        *string `gorm:"column:gender" json:"gender"`
	ContactNumber *string `gorm:"column:contact_number" json:"contact_number"`
	Email         *string `gorm:"column:email;index" json:"email"`
	Address       *string `gorm:"column:address" json:"address"`
	PatientType   *string `gorm:"column:patient_type" json:"patient_type"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientInput is the draft a patient form submits.
type PatientInput struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	PatientType   string `json:"patient_type"`
}

func (in PatientInput) Columns() Columns {
	return Columns{
		"first_name":     in.FirstName,
		"last_name":      in.LastName,
		"date_of_birth":  nullable(in.DateOfBirth),
		"gender":         nullable(in.Gender),
		"contact_number": nullable(in.ContactNumber),
		"email":          nullable(in.Email),
		"address":        nullable(in.Address),
		"patient_type":   nullable(in.PatientType),
	}
}

// Model builds the row a create inserts.
func (in PatientInput) Model() *Patient {
	return &Patient{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		DateOfBirth:   nullable(in.DateOfBirth),
		Gender:        nullable(in.Gender),
		ContactNumber: nullable(in.ContactNumber),
		Email:         nullable(in.Email),
		Address:       nullable(in.Address),
		PatientType:   nullable(in.PatientType),
	}
}

// Input returns the draft matching the patient's current values.
func (p Patient) Input() PatientInput {
	return PatientInput{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		DateOfBirth:   dateValue(p.DateOfBirth),
		Gender:        value(p.Gender),
		ContactNumber: value(p.ContactNumber),
		Email:         value(p.Email),
		Address:       value(p.Address),
		PatientType:   value(p.PatientType),
	}
}

// FullName joins first and last name.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PatientFilter narrows a patient listing.
type PatientFilter struct {
	Search      string `form:"search"`
	PatientType string `form:"patient_type"`
}

func (f PatientFilter) Values() map[string]string {
	return map[string]string{"search": f.Search, "patient_type": f.PatientType}
}
