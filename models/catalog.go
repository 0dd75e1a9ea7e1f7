package models

// LabTest model
type LabTest struct {
	Base
	Name        string   `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description *string  `gorm:"column:description" json:"description"`
	Price       *float64 `gorm:"column:price;check:price >= 0" json:"price"`
}

func (LabTest) TableName() string {
	return "lab_tests"
}

// Medication model
type Medication struct {
	Base
	Name        string   `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description *string  `gorm:"column:description" json:"description"`
	Dosage      *string  `gorm:"column:dosage" json:"dosage"`
	Price       *float64 `gorm:"column:price;check:price >= 0" json:"price"`
}

func (Medication) TableName() string {
	return "medications"
}

// LabTestInput is the draft a lab test form submits.
type LabTestInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       OptionalNumber `json:"price"`
}

func (in LabTestInput) Columns() Columns {
	return Columns{
		"name":        in.Name,
		"description": nullable(in.Description),
		"price":       in.Price.Ptr(),
	}
}

func (in LabTestInput) Model() *LabTest {
	return &LabTest{Name: in.Name, Description: nullable(in.Description), Price: in.Price.Ptr()}
}

func (t LabTest) Input() LabTestInput {
	return LabTestInput{Name: t.Name, Description: value(t.Description), Price: priceValue(t.Price)}
}

// MedicationInput is the draft a medication form submits.
type MedicationInput struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Dosage      string         `json:"dosage"`
	Price       OptionalNumber `json:"price"`
}

func (in MedicationInput) Columns() Columns {
	return Columns{
		"name":        in.Name,
		"description": nullable(in.Description),
		"dosage":      nullable(in.Dosage),
		"price":       in.Price.Ptr(),
	}
}

func (in MedicationInput) Model() *Medication {
	return &Medication{
		Name:        in.Name,
		Description: nullable(in.Description),
		Dosage:      nullable(in.Dosage),
		Price:       in.Price.Ptr(),
	}
}

func (m Medication) Input() MedicationInput {
	return MedicationInput{
		Name:        m.Name,
		Description: value(m.Description),
		Dosage:      value(m.Dosage),
		Price:       priceValue(m.Price),
	}
}

// CatalogFilter narrows lab test and medication listings.
type CatalogFilter struct {
	Search string `form:"search"`
}

func (f CatalogFilter) Values() map[string]string {
	return map[string]string{"search": f.Search}
}

func priceValue(p *float64) OptionalNumber {
	if p == nil {
		return OptionalNumber{}
	}
	return NewOptionalNumber(*p)
}
