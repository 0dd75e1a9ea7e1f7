package models

// Staff statuses
const (
	StaffActive   = "Active"
	StaffOnLeave  = "On Leave"
	StaffInactive = "Inactive"
)

var StaffStatuses = []string{StaffActive, StaffOnLeave, StaffInactive}

// Designations counted as on duty by the dashboard.
const (
	DesignationDoctor = "Doctor"
	DesignationNurse  = "Nurse"
)

// Staff model
type Staff struct {
	Base
	Name        string  `gorm:"column:name;not null;index" json:"name"`
	Department  string  `gorm:"column:department;not null" json:"department"`
	Designation string  `gorm:"column:designation;not null;index" json:"designation"`
	Email       string  `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Phone       *string `gorm:"column:phone" json:"phone"`
	JoiningDate string  `gorm:"column:joining_date;type:date;not null" json:"joining_date"`
	Status      string  `gorm:"column:status;not null;check:status IN ('Active', 'On Leave', 'Inactive')" json:"status"`
}

func (Staff) TableName() string {
	return "staff"
}

// StaffInput is the draft a staff form submits.
type StaffInput struct {
	Name        string `json:"name"`
	Department  string `json:"department"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	JoiningDate string `json:"joining_date"`
	Status      string `json:"status"`
}

func (in StaffInput) Columns() Columns {
	return Columns{
		"name":         in.Name,
		"department":   in.Department,
		"designation":  in.Designation,
		"email":        in.Email,
		"phone":        nullable(in.Phone),
		"joining_date": in.JoiningDate,
		"status":       in.Status,
	}
}

func (in StaffInput) Model() *Staff {
	return &Staff{
		Name:        in.Name,
		Department:  in.Department,
		Designation: in.Designation,
		Email:       in.Email,
		Phone:       nullable(in.Phone),
		JoiningDate: in.JoiningDate,
		Status:      in.Status,
	}
}

func (s Staff) Input() StaffInput {
	joining := s.JoiningDate
	if len(joining) > len(DateLayout) {
		joining = joining[:len(DateLayout)]
	}
	return StaffInput{
		Name:        s.Name,
		Department:  s.Department,
		Designation: s.Designation,
		Email:       s.Email,
		Phone:       value(s.Phone),
		JoiningDate: joining,
		Status:      s.Status,
	}
}

// StaffFilter narrows a staff listing.
type StaffFilter struct {
	Search string `form:"search"`
	Role   string `form:"role"`
	Status string `form:"status"`
}

func (f StaffFilter) Values() map[string]string {
	return map[string]string{"search": f.Search, "role": f.Role, "status": f.Status}
}
